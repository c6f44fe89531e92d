package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bizops-backend/internal/service/integrity"
)

// AuditCmd returns the audit command.
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run data integrity checks",
	}

	var scope string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the integrity checks once and print the findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scope != "all" && scope != "inventory" {
				return fmt.Errorf("--scope must be all or inventory, got %q", scope)
			}
			return withCore(cmd, func(ctx context.Context, s *session) error {
				var (
					report *integrity.RunReport
					err    error
				)
				if scope == "inventory" {
					report, err = s.core.Integrity.CheckInventoryConsistency(ctx)
				} else {
					report, err = s.core.Integrity.RunAllChecks(ctx)
				}
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	run.Flags().StringVar(&scope, "scope", "all", "which checks to run: all or inventory")
	cmd.AddCommand(run)

	return cmd
}

func printReport(w io.Writer, r *integrity.RunReport) {
	fmt.Fprintf(w, "run %s (%s): %d issue(s) in %s\n", r.RunID, r.Trigger, r.TotalIssues, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	for _, t := range slices.Sorted(maps.Keys(r.Counts)) {
		fmt.Fprintf(w, "  %-30s %d\n", t, r.Counts[t])
	}
	for _, a := range r.Alerts {
		state := "raised"
		if a.Refreshed {
			state = "refreshed"
		}
		fmt.Fprintf(w, "  alert %s: %s (%s)\n", state, a.Alert.IssueType, a.Alert.Severity)
	}
	for _, t := range r.FailedChecks {
		fmt.Fprintf(w, "  check failed: %s\n", t)
	}
	for _, t := range r.SkippedChecks {
		fmt.Fprintf(w, "  check skipped: %s\n", t)
	}
}

// IssuesCmd returns the issues command.
func IssuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage recorded integrity issues",
	}

	var text, actor string
	resolve := &cobra.Command{
		Use:   "resolve <issue-id>",
		Short: "Mark an integrity issue resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("issue id: %w", err)
			}
			actorID, err := parseActor(actor)
			if err != nil {
				return err
			}
			return withCore(cmd, func(ctx context.Context, s *session) error {
				issue, err := s.core.Integrity.ResolveIssue(asOperator(ctx, actorID), id, text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "resolved %s issue %s\n", issue.IssueType, issue.ID)
				return nil
			})
		},
	}
	resolve.Flags().StringVar(&text, "text", "", "resolution note (required)")
	resolve.Flags().StringVar(&actor, "actor", "", "id of the user recorded as resolver (required)")
	_ = resolve.MarkFlagRequired("text")
	_ = resolve.MarkFlagRequired("actor")
	cmd.AddCommand(resolve)

	return cmd
}
