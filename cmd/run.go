package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/cache"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/explain"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

// runTUI opens the store, builds dependencies, and launches the TUI.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The alt screen owns stderr, so logs go to a file.
	dataDir, err := store.DataDir()
	if err != nil {
		return err
	}
	log, logFile, err := logging.SetupFile(dataDir, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := localized(cmd.Context(), cfg)
	explainer, closeExplainer := newExplainer(ctx, cfg, st.EventRepo(), log)
	defer closeExplainer()

	sess := session.New(ctx, session.Options{
		Generator: problemgen.NewDefault(),
		Seed:      cfg.Seed,
		FrontEnd:  "tui",
		Recorder:  store.NewRecorder(st.EventRepo()),
		Explainer: explainer,
		Logger:    log,
	})
	return app.Run(ctx, sess)
}

// newExplainer builds the LLM explainer when a provider is configured.
// Explanations are optional: any setup failure is logged and the
// template solutions are used instead.
func newExplainer(ctx context.Context, cfg config.Config, sink llm.EventSink, log *slog.Logger) (session.Explainer, func() error) {
	noop := func() error { return nil }
	if !cfg.LLMEnabled() {
		return nil, noop
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, sink, log)
	if err != nil {
		log.Warn("LLM provider not configured, using template solutions", "error", err)
		return nil, noop
	}

	c, closeCache, err := cache.Open(ctx, cfg.RedisURL, "mathdrill:explain:")
	if err != nil {
		log.Warn("explanation cache unavailable, using memory", "error", err)
		c, closeCache = cache.NewMemory(), noop
	}

	log.Debug("explanations enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return &explain.Explainer{
		Provider: provider,
		Cache:    c,
		TTL:      cfg.ExplainCacheTTL,
		Timeout:  cfg.LLM.Timeout,
		Language: i18n.LanguageName(i18n.Match(cfg.Lang)),
		Log:      log,
	}, closeCache
}
