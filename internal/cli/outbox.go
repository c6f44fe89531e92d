package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// OutboxCmd returns the outbox command.
func OutboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and drive the dependent-write outbox",
	}

	var all bool
	drain := &cobra.Command{
		Use:   "drain",
		Short: "Apply pending outbox entries now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, s *session) error {
				var claimed, done, failed int
				for {
					res, err := s.core.Outbox.Drain(ctx)
					if err != nil {
						return err
					}
					claimed += res.Claimed
					done += res.Done
					failed += res.Failed
					if !all || res.Claimed == 0 || res.Done == 0 {
						break
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "claimed %d, applied %d, failed %d\n", claimed, done, failed)
				return nil
			})
		},
	}
	drain.Flags().BoolVar(&all, "all", false, "keep draining batches until nothing more applies")
	cmd.AddCommand(drain)

	cmd.AddCommand(&cobra.Command{
		Use:   "retry-failed",
		Short: "Return failed entries to pending with a fresh attempt budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, s *session) error {
				n, err := s.core.Outbox.RetryFailed(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %d failed entries\n", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print outbox entry counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, func(ctx context.Context, s *session) error {
				st, err := s.core.Outbox.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pending %d, processing %d, done %d, failed %d\n",
					st.Pending, st.Processing, st.Done, st.Failed)
				return nil
			})
		},
	})

	return cmd
}
