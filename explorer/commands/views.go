package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/service"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/views"
)

func dashboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the chain summary and the latest blocks",
		Args:  cobra.NoArgs,
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, _ []string) error {
			rt.ensureValidators(cmd.Context())
			poller := service.NewPoller(rt.explorer, rt.config.RefreshInterval(), rt.config.VisibleBlocks)
			if err := poller.Refresh(cmd.Context()); err != nil {
				return err
			}
			snap, err := poller.Snapshot()
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), snap.Dashboard)
			}
			return printDashboard(cmd.OutOrStdout(), snap.Dashboard)
		}),
	}
}

func printDashboard(w io.Writer, d views.Dashboard) error {
	s := d.Summary
	t := newTable(w)
	t.row("Height", strconv.FormatInt(s.BlockHeight, 10))
	t.row("Latest block", s.LatestBlockTime)
	t.row("Bonded tokens", s.BondedTokensPercent+" ("+s.BondedTokensDetail+")")
	t.row("Inflation", s.InflationPercent)
	if err := t.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	t = newTable(w, "HEIGHT", "PROPOSER", "TXS", "TIME")
	for _, b := range d.Blocks {
		t.row(strconv.FormatInt(b.Height, 10), b.Proposer, strconv.Itoa(b.Txs), b.Time)
	}
	return t.Flush()
}

func blockCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "block <height>",
		Short: "Print a block with its decoded transactions",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, args []string) error {
			height, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || height <= 0 {
				return fmt.Errorf("height must be a positive integer, got %q", args[0])
			}
			rt.ensureValidators(cmd.Context())
			view, err := rt.explorer.Block(cmd.Context(), height)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printBlock(cmd.OutOrStdout(), view)
		}),
	}
}

func printBlock(w io.Writer, view *views.BlockView) error {
	if err := printFields(w, "Block ID", view.BlockID); err != nil {
		return err
	}
	if err := printFields(w, "Header", view.Header); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTransactions (%d", len(view.Txs))
	if view.Skipped > 0 {
		fmt.Fprintf(w, ", %d not decodable", view.Skipped)
	}
	fmt.Fprintln(w, ")")

	t := newTable(w, "HASH", "MESSAGES", "FEE", "MEMO")
	for _, tx := range view.Txs {
		t.row(tx.Hash, tx.Messages, tx.Fee, tx.Memo)
	}
	return t.Flush()
}

func txCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tx <hash>",
		Short: "Print a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, args []string) error {
			result := views.ClassifySearch(args[0])
			if result.Kind != views.SearchTransaction {
				return fmt.Errorf("%q is not a transaction hash", args[0])
			}
			view, err := rt.explorer.Transaction(cmd.Context(), result.Query)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), view)
			}
			w := cmd.OutOrStdout()
			if err := printFields(w, "Transaction", view.Basic); err != nil {
				return err
			}
			for i, msg := range view.Messages {
				if err := printFields(w, fmt.Sprintf("\nMessage #%d", i+1), msg); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func addressCmd(opts *options) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "address <address>",
		Short: "Print the assets, delegations and transactions of an account",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(opts, func(cmd *cobra.Command, rt *runtime, args []string) error {
			if !resolver.IsAccountAddress(args[0]) {
				return fmt.Errorf("%q is not an account address", args[0])
			}
			rt.ensureValidators(cmd.Context())
			view, err := rt.explorer.Address(cmd.Context(), args[0], page, limit)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printAddress(cmd.OutOrStdout(), view)
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "transaction page")
	cmd.Flags().IntVar(&limit, "limit", service.DefaultTxsLimit, "transactions per page")
	return cmd
}

func printAddress(w io.Writer, view *views.AddressView) error {
	if err := printFields(w, "Account", view.Account); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAssets (total %s)\n", view.Total)
	t := newTable(w, "TYPE", "AMOUNT", "SHARE")
	for _, a := range view.Assets {
		t.row(a.Type, a.Display, a.Percent)
	}
	if err := t.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nDelegations")
	t = newTable(w, "VALIDATOR", "AMOUNT", "REWARD")
	for _, d := range view.Delegations {
		t.row(d.Validator, d.Token, d.Reward)
	}
	if err := t.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTransactions")
	t = newTable(w, "HEIGHT", "HASH", "MESSAGES", "TIME")
	for _, tx := range view.Transactions {
		t.row(strconv.FormatInt(tx.Height, 10), tx.TxHash, tx.Messages, tx.Time)
	}
	return t.Flush()
}
