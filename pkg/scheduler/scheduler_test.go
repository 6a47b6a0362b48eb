package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddAndRemove(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("review-queue", "*/5 * * * *", func() {}))
	assert.Error(t, s.AddJob("review-queue", "*/5 * * * *", func() {}), "duplicate ids are rejected")

	jobs := s.ListJobs()
	require.Contains(t, jobs, "review-queue")
	assert.Equal(t, "*/5 * * * *", jobs["review-queue"].CronExpr)
	assert.Nil(t, jobs["review-queue"].LastRun)
	assert.NotNil(t, jobs["review-queue"].NextRun)

	require.NoError(t, s.RemoveJob("review-queue"))
	assert.Empty(t, s.ListJobs())
	assert.Error(t, s.RemoveJob("review-queue"))
}

func TestScheduler_InvalidCron(t *testing.T) {
	s := NewEventScheduler()
	assert.Error(t, s.AddJob("bad", "not a cron", func() {}))
	assert.Empty(t, s.ListJobs())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewEventScheduler()
	assert.False(t, s.IsRunning())

	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}
