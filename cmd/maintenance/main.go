// Command maintenance runs the housekeeping jobs once and exits. The API
// server runs the same jobs hourly; this binary suits cron or CI use.
package main

import (
	"context"
	"log"
	"os"
	"sort"
	"time"

	"brightline/internal/config"
	"brightline/internal/database"
	"brightline/internal/pkg/logger"
	"brightline/internal/repository"
	"brightline/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stdout"}); err != nil {
		log.Fatalf("logger: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	jobs := scheduler.Maintenance(repository.NewQuoteRepository(db), repository.NewUserRepository(db))
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	failed := false
	for _, name := range names {
		if _, err := scheduler.Run(ctx, name, jobs[name]); err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
