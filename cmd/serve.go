package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mathdrill/internal/cache"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/server"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve practice sessions over a JSON API",
	Long: `Serve practice sessions over HTTP.

Sessions are kept in memory, or in Redis when --redis-url is set so that
several instances can share them. Idle sessions expire after --session-ttl.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis-url", "", "Redis URL for sessions and cached explanations, e.g. redis://localhost:6379/0")
	serveCmd.Flags().Duration("session-ttl", 2*time.Hour, "Idle time after which a session expires")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	sessions, closeSessions, err := cache.Open(ctx, cfg.RedisURL, "mathdrill:")
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer closeSessions()

	explainer, closeExplainer := newExplainer(ctx, cfg, st.EventRepo(), log)
	defer closeExplainer()

	gen := problemgen.NewDefault()
	reg := server.NewRegistry(sessions, cfg.SessionTTL, session.Options{
		Generator: gen,
		FrontEnd:  "http",
		Recorder:  store.NewRecorder(st.EventRepo()),
		Explainer: explainer,
		Logger:    log,
	})

	opts := server.Options{
		Registry: reg,
		Catalog:  gen.Catalog(),
		Lang:     cfg.Lang,
		Logger:   log,
	}
	if h, ok := sessions.(interface{ HealthCheck(context.Context) error }); ok {
		opts.Health = h
	}

	backend := "memory"
	if cfg.RedisURL != "" {
		backend = "redis"
	}
	log.Info("serving", "addr", cfg.Addr, "sessions", backend, "session_ttl", cfg.SessionTTL,
		"explanations", cfg.LLMEnabled())
	return server.New(opts).ListenAndServe(ctx, cfg.Addr)
}
