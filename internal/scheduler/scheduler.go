// Package scheduler runs the daily article generation sweep for agent
// instances configured with a "daily" schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/jmilbury/agentpress/internal/generator"
	"github.com/jmilbury/agentpress/internal/store"
)

const dailySpec = "0 6 * * *"

type Scheduler struct {
	cron      *cron.Cron
	instances *store.InstanceStore
	generator *generator.Service
}

func New(instances *store.InstanceStore, gen *generator.Service) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		instances: instances,
		generator: gen,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(dailySpec, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily generation: %w", err)
	}
	s.cron.Start()
	slog.Info("scheduler started", "spec", dailySpec)
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runDaily generates articles for every daily-scheduled instance. Failures
// are logged per instance and never abort the sweep.
func (s *Scheduler) runDaily() {
	instances, err := s.instances.ListBySchedule("daily")
	if err != nil {
		slog.Error("daily sweep failed to list instances", "error", err)
		return
	}
	slog.Info("running daily generation sweep", "instances", len(instances))

	for i := range instances {
		instance := &instances[i]
		count, err := s.generator.GenerateArticles(context.Background(), instance)
		if err != nil {
			slog.Error("daily generation failed", "instance", instance.ID, "error", err)
			continue
		}
		slog.Info("daily generation completed", "instance", instance.ID, "articles", count)
	}
}
