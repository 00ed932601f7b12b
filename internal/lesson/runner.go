package lesson

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-closures/internal/shared/logger"
	"go-closures/internal/shared/metrics"
)

// SectionResult represents the outcome of one section
type SectionResult struct {
	Section   string
	Success   bool
	Duration  time.Duration
	Error     error
	StartTime time.Time
	EndTime   time.Time
}

// RunnerOptions holds the runner dependencies
type RunnerOptions struct {
	Logger      *logger.Logger
	Metrics     *metrics.Metrics
	BannerWidth int
	BannerFill  string
}

// Runner prints lesson sections one after another
type Runner struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	width   int
	fill    string
}

// NewRunner creates a new runner instance
func NewRunner(opts RunnerOptions) *Runner {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Runner{
		logger:  log.Named("lesson"),
		metrics: opts.Metrics,
		width:   opts.BannerWidth,
		fill:    opts.BannerFill,
	}
}

// Run prints every section to w in order. It stops at the first failing
// section and returns the results gathered so far.
func (r *Runner) Run(ctx context.Context, w io.Writer, sections []Section) ([]SectionResult, error) {
	runLogger := r.logger.With(zap.String("run_id", uuid.New().String()))
	runLogger.Info("Starting lesson", zap.Int("section_count", len(sections)))

	if r.metrics != nil {
		r.metrics.RecordLessonRun()
	}

	results := make([]SectionResult, 0, len(sections))
	for _, s := range sections {
		result := r.wrap(runLogger, s)(ctx, w)
		results = append(results, result)

		if !result.Success {
			return results, fmt.Errorf("section %s: %w", result.Section, result.Error)
		}
	}

	runLogger.Info("Lesson finished", zap.Int("section_count", len(results)))
	return results, nil
}

// wrap wraps a section with its banner, timing, logging and metrics
func (r *Runner) wrap(log *logger.Logger, s Section) func(ctx context.Context, w io.Writer) SectionResult {
	return func(ctx context.Context, w io.Writer) SectionResult {
		startTime := time.Now()

		log.Debug("Starting section",
			zap.String("section", s.Name()),
			zap.Time("start_time", startTime))

		err := r.header(w, s)
		if err == nil {
			err = s.Run(ctx, w)
		}

		endTime := time.Now()
		result := SectionResult{
			Section:   s.Name(),
			Success:   err == nil,
			Duration:  endTime.Sub(startTime),
			Error:     err,
			StartTime: startTime,
			EndTime:   endTime,
		}

		if r.metrics != nil {
			r.metrics.RecordSection(result.Section, result.Duration, result.Error)
		}

		if result.Success {
			log.Debug("Section completed",
				zap.String("section", result.Section),
				zap.Duration("duration", result.Duration))
		} else {
			log.Error("Section failed",
				zap.String("section", result.Section),
				zap.Duration("duration", result.Duration),
				zap.Error(result.Error))
		}

		return result
	}
}

func (r *Runner) header(w io.Writer, s Section) error {
	spaced := false
	if sp, ok := s.(Spacer); ok {
		spaced = sp.Spaced()
	}

	banner := Banner(s.Title(), r.width, r.fill)
	if spaced {
		_, err := fmt.Fprintf(w, "\n%s\n\n", banner)
		return err
	}
	_, err := fmt.Fprintln(w, banner)
	return err
}
