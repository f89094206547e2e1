package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/rpc"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/service"
)

const shutdownTimeout = 30 * time.Second

func serveCmd(opts *options) *cobra.Command {
	var certFile, keyFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll the dashboard and serve the explorer HTTP API",
		Args:  cobra.NoArgs,
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().
				Strs("api_urls", rt.config.APIURLs).
				Str("address", rt.config.Address()).
				Msg("Starting Spectra Explorer")

			if n, err := rt.explorer.RefreshDenomTraces(ctx); err != nil {
				log.Warn().Err(err).Msg("denom traces unavailable, IBC denoms show as hashes")
			} else {
				log.Info().Int("count", n).Msg("Loaded denom traces")
			}

			poller := service.NewPoller(rt.explorer, rt.config.RefreshInterval(), rt.config.VisibleBlocks)
			poller.Start(ctx)
			defer poller.Stop()

			server, err := rpc.NewServer(ctx, rt.config.ServerConfig(), rt.explorer, poller)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				if certFile != "" && keyFile != "" {
					errCh <- server.StartTLS(certFile, keyFile)
				} else {
					errCh <- server.Start()
				}
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("Server error")
					return err
				}
			case <-ctx.Done():
				log.Info().Msg("Received shutdown signal")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}),
	}
	cmd.Flags().StringVar(&certFile, "tls-cert", "", "TLS certificate file, serves https together with --tls-key")
	cmd.Flags().StringVar(&keyFile, "tls-key", "", "TLS key file")
	return cmd
}
