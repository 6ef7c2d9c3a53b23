package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/gmatprep/internal/gmat"
	"github.com/abhisek/gmatprep/internal/llm"
	"github.com/abhisek/gmatprep/internal/server"
	"github.com/abhisek/gmatprep/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (overrides GMAT_ADDR, default 127.0.0.1:5000)")
	cmd.Flags().String("style-guide", "", "Path to the GMAT style guide (overrides GMAT_STYLE_GUIDE, default gmat_style_guide.txt)")
	cmd.Flags().Bool("cache-style-guide", false, "Read the style guide once instead of on every request")
	addLLMFlags(cmd)
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "LLM provider: openrouter, openai, anthropic, gemini, mock (overrides GMAT_LLM_PROVIDER)")
	cmd.Flags().String("model", "", "Model for the selected provider (overrides the provider's model variable)")
}

// llmConfig builds the LLM configuration from the environment and flags.
func llmConfig(cmd *cobra.Command) llm.Config {
	cfg := llm.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.SetModel(m)
	}
	return cfg
}

// newClient validates cfg, opens the audit log if configured and builds
// the LLM client. The returned func releases the audit log.
func newClient(ctx context.Context, cmd *cobra.Command, cfg llm.Config) (*llm.Client, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("LLM configuration: %w", err)
	}

	var repo store.CallRepo
	closeFn := func() {}

	dbPath, err := auditDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve audit database path: %w", err)
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit log: %w", err)
		}
		repo = st.CallRepo()
		closeFn = func() { st.Close() }
		logrus.WithField("path", dbPath).Info("LLM audit log enabled")
	}

	provider, err := llm.NewProvider(ctx, cfg, repo)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return llm.NewClient(provider, llm.OptionsFromConfig(cfg)), closeFn, nil
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := llmConfig(cmd)
	client, closeFn, err := newClient(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	var guide gmat.StyleGuide = gmat.FileStyleGuide{Path: styleGuidePath(cmd)}
	if cached, _ := cmd.Flags().GetBool("cache-style-guide"); cached {
		guide = gmat.NewCachedStyleGuide(guide)
	}

	srvCfg := server.DefaultConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		srvCfg.Addr = addr
	} else if addr := os.Getenv("GMAT_ADDR"); addr != "" {
		srvCfg.Addr = addr
	}
	if minWrite := cfg.Timeout + srvCfg.ReadTimeout; srvCfg.WriteTimeout < minWrite {
		srvCfg.WriteTimeout = minWrite
	}

	logrus.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"model":    client.ModelID(),
		"addr":     srvCfg.Addr,
	}).Info("LLM initialized")

	router := server.NewRouter(server.Deps{
		Generator: gmat.NewGenerator(client, guide, nil),
		Evaluator: gmat.NewEvaluator(client),
		Client:    client,
	})
	return server.Run(ctx, srvCfg, router)
}

func styleGuidePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("style-guide"); p != "" {
		return p
	}
	return envOr("GMAT_STYLE_GUIDE", "gmat_style_guide.txt")
}
