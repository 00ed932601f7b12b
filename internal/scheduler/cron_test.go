package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-closures/internal/lesson"
	"go-closures/internal/shared/logger"
)

type stubJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *stubJob) Name() string           { return j.name }
func (j *stubJob) Schedule() string       { return j.schedule }
func (j *stubJob) Timeout() time.Duration { return time.Second }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func newTestScheduler(t *testing.T) *Scheduler {
	return NewScheduler(cron.New(), logger.Wrap(zaptest.NewLogger(t)))
}

// TestRegisterJob_Valid verifies a job with a valid schedule is registered.
func TestRegisterJob_Valid(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t)
	require.NoError(t, s.RegisterJob(&stubJob{name: "a", schedule: "@every 1h"}))
	assert.Equal(t, []string{"a"}, s.GetRegisteredJobs())
}

// TestRegisterJob_InvalidSchedule verifies bad cron expressions are rejected and not kept.
func TestRegisterJob_InvalidSchedule(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t)
	err := s.RegisterJob(&stubJob{name: "a", schedule: "whenever"})
	require.Error(t, err)
	assert.Empty(t, s.GetRegisteredJobs())
}

// TestRegisterJob_Duplicate verifies a name can only be registered once.
func TestRegisterJob_Duplicate(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t)
	require.NoError(t, s.RegisterJob(&stubJob{name: "a", schedule: "@every 1h"}))
	assert.Error(t, s.RegisterJob(&stubJob{name: "a", schedule: "@every 1h"}))
}

// TestExecute_ReportsResult verifies success and failure results reach OnResult.
func TestExecute_ReportsResult(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t)
	var got []JobResult
	s.OnResult = func(r JobResult) { got = append(got, r) }

	boom := errors.New("boom")
	ok := &stubJob{name: "ok", schedule: "@every 1h"}
	bad := &stubJob{name: "bad", schedule: "@every 1h", err: boom}

	s.wrapJob(ok)()
	s.wrapJob(bad)()

	require.Len(t, got, 2)
	assert.True(t, got[0].Success)
	assert.Equal(t, "ok", got[0].JobName)
	assert.False(t, got[1].Success)
	assert.ErrorIs(t, got[1].Error, boom)
	assert.Equal(t, 1, ok.runs)
	assert.Equal(t, 1, bad.runs)
}

// TestStop_Idle verifies stopping a scheduler with no running jobs returns promptly.
func TestStop_Idle(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

// TestLessonJob_Run verifies a replay prints the selected sections.
func TestLessonJob_Run(t *testing.T) {
	t.Parallel()

	sections, err := lesson.Select(lesson.Catalog(nil), []string{"state"})
	require.NoError(t, err)

	var buf bytes.Buffer
	runner := lesson.NewRunner(lesson.RunnerOptions{BannerWidth: 0, BannerFill: "="})
	job := NewLessonJob(runner, &buf, "@every 1m", sections)

	assert.Equal(t, "lesson_replay", job.Name())
	assert.Equal(t, "@every 1m", job.Schedule())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, " Closures on Maintaining State \n10\n30\n", buf.String())

	counter, err := lesson.Select(lesson.Catalog(nil), []string{"counter"})
	require.NoError(t, err)
	job.SetSections(counter)

	buf.Reset()
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, " to encapsulate data and provide controlled access to it \n1\n2\n", buf.String())
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (j *blockingJob) Name() string           { return "blocking" }
func (j *blockingJob) Schedule() string       { return "@every 1s" }
func (j *blockingJob) Timeout() time.Duration { return 10 * time.Second }

func (j *blockingJob) Run(ctx context.Context) error {
	j.once.Do(func() { close(j.started) })
	<-j.release
	return nil
}

// TestStop_TimesOut verifies Stop reports the context error when a running job outlives it.
func TestStop_TimesOut(t *testing.T) {
	t.Parallel()

	// The job finishes after the test returns, so it cannot log through zaptest
	s := NewScheduler(cron.New(), logger.NewNop())
	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, s.RegisterJob(job))
	s.Start()

	select {
	case <-job.started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Stop(ctx), context.Canceled)

	close(job.release)
}
