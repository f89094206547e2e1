// Package commands holds the explorer CLI.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/rpc"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/service"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Logger()
}

// options are the persistent flags shared by every command
type options struct {
	configPath string
	jsonOutput bool
	verbose    bool
}

// Root builds the explorer command tree
func Root() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "explorer",
		Short: "Read-only Cosmos chain explorer",
		Long: `Spectra Explorer queries a chain REST API and turns blocks, transactions,
accounts and staking data into readable views.

Run "explorer serve" for the HTTP API or use the view commands to print a
single page. Without --config the settings are read from EXPLORER_* variables.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			setLogLevel(level)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (toml), env when empty")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")

	root.AddCommand(
		serveCmd(opts),
		dashboardCmd(opts),
		blockCmd(opts),
		txCmd(opts),
		addressCmd(opts),
		decodeCmd(opts),
		searchCmd(opts),
		validatorsCmd(opts),
		versionCmd(),
	)
	return root
}

// setLogLevel shares one logger between the explorer packages
func setLogLevel(level zerolog.Level) {
	log = log.Level(level)
	query.SetLogger(log)
	service.SetLogger(log)
	resolver.SetLogger(log.With().Str("component", "resolver").Logger())
	rpc.SetLogger(log.With().Str("component", "rpc").Logger())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Spectra Explorer %s\n", Version)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Built:      %s\n", BuildTime)
		},
	}
}
