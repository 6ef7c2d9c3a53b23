package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gmatprep/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM audit log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openAuditStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		calls, err := s.CallRepo().RecentCalls(context.Background(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}
		printCalls(cmd.OutOrStdout(), calls)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM call counts and latency by purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openAuditStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.CallRepo().UsageByPurpose(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		printUsage(cmd.OutOrStdout(), usage)
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of calls to show")
	llmListCmd.Flags().String("purpose", "", "Only show calls with this purpose")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

// openAuditStore opens the audit log named by --audit-db or GMAT_AUDIT_DB,
// falling back to the default data directory.
func openAuditStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := auditDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func printCalls(w io.Writer, calls []store.CallRecord) {
	if len(calls) == 0 {
		fmt.Fprintln(w, "No LLM calls found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-15s  %-32s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 92))

	for _, c := range calls {
		ok := "✓"
		if !c.Success {
			ok = "✗ " + truncate(c.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-15s  %-32s  %-7d  %s\n",
			c.ID,
			c.Timestamp.Local().Format("2006-01-02 15:04:05"),
			c.Purpose,
			truncate(c.Model, 32),
			c.LatencyMs,
			ok,
		)
	}
}

func printUsage(w io.Writer, usage []store.PurposeUsage) {
	if len(usage) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 52))
	fmt.Fprintf(w, "%-16s  %6s  %8s  %10s\n", "Purpose", "Calls", "Failed", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 52))

	var totalCalls, totalFailed int64
	for _, u := range usage {
		fmt.Fprintf(w, "%-16s  %6d  %8d  %10.0f\n", u.Purpose, u.Calls, u.Failures, u.AvgLatencyMs)
		totalCalls += u.Calls
		totalFailed += u.Failures
	}

	fmt.Fprintln(w, strings.Repeat("─", 52))
	fmt.Fprintf(w, "%-16s  %6d  %8d\n", "TOTAL", totalCalls, totalFailed)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
