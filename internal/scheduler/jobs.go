package scheduler

import (
	"context"
	"time"
)

type QuoteExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type Sweeper interface {
	Sweep()
}

const (
	JobExpireQuotes    = "expire-quotes"
	JobPurgeTokens     = "purge-tokens"
	JobSweepRateLimits = "sweep-rate-limits"
)

func ExpireQuotes(repo QuoteExpirer) Task {
	return repo.ExpireOverdue
}

func PurgeTokens(repo TokenPurger) Task {
	return repo.PurgeExpiredTokens
}

func SweepRateLimits(s Sweeper) Task {
	return func(context.Context, time.Time) (int64, error) {
		s.Sweep()
		return 0, nil
	}
}

// Maintenance is the set of jobs cmd/maintenance runs once and the API
// server runs periodically.
func Maintenance(quotes QuoteExpirer, users TokenPurger) map[string]Task {
	return map[string]Task{
		JobExpireQuotes: ExpireQuotes(quotes),
		JobPurgeTokens:  PurgeTokens(users),
	}
}
