// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"brightline/internal/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// Task is one unit of housekeeping. It returns how many records it touched.
type Task func(ctx context.Context, now time.Time) (int64, error)

type Scheduler struct {
	cron    *gocron.Scheduler
	mu      sync.Mutex
	running bool
}

func New() *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{cron: s}
}

// Every registers task to run at the given interval, starting immediately.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	_, err := s.cron.Every(interval).Tag(name).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		Run(ctx, name, task)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.StartAsync()
	s.running = true
	logger.Info("scheduler started", "jobs", len(s.cron.Jobs()))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	logger.Info("scheduler stopped")
}

// Run executes a task once and logs the outcome.
func Run(ctx context.Context, name string, task Task) (int64, error) {
	start := time.Now()
	n, err := task(ctx, start)
	if err != nil {
		logger.Error("job failed", "job", name, "error", err)
		return n, err
	}
	logger.Info("job finished", "job", name, "affected", n, "took", time.Since(start).String())
	return n, nil
}
