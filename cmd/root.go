package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/gmatprep/internal/logging"
	"github.com/abhisek/gmatprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gmatprep",
	Short: "GMAT quant question generator and answer evaluator",
	Long:  "gmatprep serves an HTTP API that generates GMAT-style quantitative questions and evaluates student answers with an LLM.",
	// Usage output on every failed LLM call would bury the error.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Values already in the environment win over .env.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = envOr("GMAT_LOG_LEVEL", "debug")
		}
		format, _ := cmd.Flags().GetString("log-format")
		if format == "" {
			format = os.Getenv("GMAT_LOG_FORMAT")
		}
		return logging.Setup(os.Stderr, level, format)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides GMAT_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides GMAT_LOG_FORMAT)")
	rootCmd.PersistentFlags().String("audit-db", "", "Path to the SQLite LLM audit log (overrides GMAT_AUDIT_DB)")

	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// auditDBPath returns the --audit-db flag, then GMAT_AUDIT_DB. Empty means
// the audit log is disabled.
func auditDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("audit-db")
	if p == "" {
		p = os.Getenv("GMAT_AUDIT_DB")
	}
	if p == "" {
		return "", nil
	}
	return p, store.EnsureDir(p)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
