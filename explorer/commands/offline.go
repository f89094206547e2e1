package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/format"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/txdecode"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/views"
)

func decodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <base64 tx>",
		Short: "Decode a base64 transaction envelope as found in a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := txdecode.DecodeErr(args[0])
			if err != nil {
				return fmt.Errorf("failed to decode transaction: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), tx)
			}

			w := cmd.OutOrStdout()
			basic := []models.Field{
				{Name: "hash", Value: tx.Hash},
				{Name: "messages", Value: txdecode.SummarizeMessages(tx.Messages)},
				{Name: "fee", Value: format.FormatTokens(tx.Fee, nil)},
				{Name: "gas", Value: strconv.FormatUint(tx.Gas, 10)},
				{Name: "memo", Value: tx.Memo},
				{Name: "timeout_height", Value: strconv.FormatUint(tx.TimeoutHeight, 10)},
				{Name: "signatures", Value: strconv.Itoa(len(tx.Signatures))},
			}
			if err := printFields(w, "Transaction", basic); err != nil {
				return err
			}
			for i, msg := range tx.Messages {
				if err := printFields(w, fmt.Sprintf("\nMessage #%d", i+1), msg.Fields()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func searchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Tell whether a query is a block height, a transaction hash or an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := views.ClassifySearch(args[0])
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), result)
			}
			if result.Kind == views.SearchUnknown {
				return fmt.Errorf("%q matches no block, transaction or address", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.Kind, result.Query)
			return nil
		},
	}
}

func validatorsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validators",
		Short: "Manage the validator cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Reload the validator directory into the cache",
		Args:  cobra.NoArgs,
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, _ []string) error {
			n, err := rt.explorer.RefreshValidators(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %d validators\n", n)
			return nil
		}),
	})
	return cmd
}
