package main

import (
	"log"
	"log/slog"

	"github.com/jmilbury/agentpress/internal/config"
	"github.com/jmilbury/agentpress/internal/generator"
	"github.com/jmilbury/agentpress/internal/llm"
	"github.com/jmilbury/agentpress/internal/scheduler"
	"github.com/jmilbury/agentpress/internal/server"
	"github.com/jmilbury/agentpress/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	var provider llm.Provider
	if p := llm.NewOpenAI(&cfg.OpenRouter); p != nil {
		provider = p
		slog.Info("generative backend configured", "model", cfg.OpenRouter.Model)
	} else {
		slog.Info("generative backend not configured, articles will use deterministic composition")
	}

	gen := generator.New(st.Articles, st.DataSources, provider)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(st.Instances, gen)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	srv := server.New(cfg.Server, st, gen)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
