package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Adaptive math practice for kids",
	Long: `mathdrill drills money, time, measurement, fractions and probability
word problems. Each topic starts at level 1 and moves up after a run of
correct answers and down after a run of misses.

Run without a subcommand to open the terminal UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("lang", "en", "Feedback language (en, es)")
	pf.Uint64("seed", 0, "Fix the problem sequence (0 picks one at random)")
	pf.String("llm-provider", "", "Explanation provider: anthropic, openai, openrouter, gemini, mock or none")
	pf.String("llm-model", "", "Override the provider's default model")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves the configuration and installs a stderr logger.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.Setup(cfg.LogLevel, cfg.LogFormat), nil
}

// resolveDBPath returns the database path from --db / MATHDRILL_DB /
// the config file, falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// localized returns ctx carrying the localizer for the configured language.
func localized(ctx context.Context, cfg config.Config) context.Context {
	return i18n.WithLocalizer(ctx, i18n.NewLocalizer(cfg.Lang))
}
