package scheduler

import (
	"context"
	"io"
	"sync"
	"time"

	"go-closures/internal/lesson"
)

// LessonJob replays the lesson on a cron schedule
type LessonJob struct {
	runner   *lesson.Runner
	out      io.Writer
	schedule string
	timeout  time.Duration

	mu       sync.Mutex
	sections []lesson.Section
}

// NewLessonJob creates a job printing sections to out on every tick
func NewLessonJob(runner *lesson.Runner, out io.Writer, schedule string, sections []lesson.Section) *LessonJob {
	return &LessonJob{
		runner:   runner,
		out:      out,
		schedule: schedule,
		timeout:  time.Minute,
		sections: sections,
	}
}

// Name returns the job name
func (j *LessonJob) Name() string {
	return "lesson_replay"
}

// Schedule returns the cron schedule
func (j *LessonJob) Schedule() string {
	return j.schedule
}

// Timeout returns the maximum run time of one replay
func (j *LessonJob) Timeout() time.Duration {
	return j.timeout
}

// SetSections swaps the sections used by the next replay
func (j *LessonJob) SetSections(sections []lesson.Section) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sections = sections
}

// Run prints the lesson once
func (j *LessonJob) Run(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.runner.Run(ctx, j.out, j.sections)
	return err
}
