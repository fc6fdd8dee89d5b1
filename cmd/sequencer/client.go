package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sequencer/api/grpcclient"
	"sequencer/domain/preblock"
)

// dial connects to the configured RPC address; the caller closes the client.
func dial(load loader) (*grpcclient.Client, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	return grpcclient.Dial(cfg.RPCAddr)
}

func printHeader(w io.Writer, h preblock.Header) {
	fmt.Fprintf(w, "id=%d time=%s\n", h.ID, h.Timestamp.Format(time.RFC3339Nano))
}

func printPreBlock(w io.Writer, p preblock.PreBlock, verbose bool) {
	fmt.Fprintf(w, "id=%d time=%s txs=%d size=%d\n",
		p.Header.ID, p.Header.Timestamp.Format(time.RFC3339Nano), len(p.Transactions), p.Size())
	if verbose {
		for i, tx := range p.Transactions {
			fmt.Fprintf(w, "  %d: %q\n", i, []byte(tx))
		}
	}
}

func newHeadCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "head",
		Short: "Print the latest committed pre-block header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := dial(load)
			if err != nil {
				return err
			}
			defer c.Close()

			h, err := c.Head(cmd.Context())
			if err != nil {
				return err
			}
			printHeader(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newRangeCmd(load loader) *cobra.Command {
	var (
		from    uint64
		count   uint32
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print committed pre-blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := dial(load)
			if err != nil {
				return err
			}
			defer c.Close()

			blocks, err := c.Range(cmd.Context(), from, count)
			if err != nil {
				return err
			}
			for _, p := range blocks {
				printPreBlock(cmd.OutOrStdout(), p, verbose)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "first pre-block id")
	cmd.Flags().Uint32Var(&count, "count", 0, "maximum pre-blocks (0 for the server cap)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print transactions")
	return cmd
}

func newSubmitCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [tx...]",
		Short: "Submit transactions, one per argument or one per stdin line",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs := make([]preblock.Transaction, 0, len(args))
			for _, a := range args {
				txs = append(txs, preblock.Transaction(a))
			}
			if len(args) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					txs = append(txs, preblock.Transaction(append([]byte{}, sc.Bytes()...)))
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}

			c, err := dial(load)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.SubmitAll(cmd.Context(), txs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d transactions\n", len(txs))
			return nil
		},
	}
}

func newTailCmd(load loader) *cobra.Command {
	var (
		from    uint64
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow pre-blocks from an id until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := dial(load)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = c.Tail(ctx, from, func(p preblock.PreBlock) error {
				printPreBlock(cmd.OutOrStdout(), p, verbose)
				return nil
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "first pre-block id")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print transactions")
	return cmd
}

