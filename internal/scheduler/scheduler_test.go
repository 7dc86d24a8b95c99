package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotes struct{ calls atomic.Int64 }

func (f *fakeQuotes) ExpireOverdue(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return 3, nil
}

type failingUsers struct{}

func (failingUsers) PurgeExpiredTokens(context.Context, time.Time) (int64, error) {
	return 0, errors.New("db down")
}

func TestRun(t *testing.T) {
	quotes := &fakeQuotes{}
	jobs := Maintenance(quotes, failingUsers{})

	n, err := Run(context.Background(), JobExpireQuotes, jobs[JobExpireQuotes])
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = Run(context.Background(), JobPurgeTokens, jobs[JobPurgeTokens])
	assert.Error(t, err)
}

func TestScheduler_RunsImmediately(t *testing.T) {
	quotes := &fakeQuotes{}
	s := New()
	require.NoError(t, s.Every(JobExpireQuotes, time.Hour, ExpireQuotes(quotes)))

	s.Start()
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return quotes.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
