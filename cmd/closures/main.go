package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-closures/internal/app/api"
	"go-closures/internal/app/config"
	"go-closures/internal/lesson"
	"go-closures/internal/scheduler"
	"go-closures/internal/shared/logger"
	"go-closures/internal/shared/metrics"
)

type sectionFlag []string

func (f *sectionFlag) String() string { return strings.Join(*f, ",") }

func (f *sectionFlag) Set(value string) error {
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*f = append(*f, name)
		}
	}
	return nil
}

func main() {
	var sections sectionFlag
	configPath := flag.String("config", "./configs", "Directory containing config.yaml")
	flag.Var(&sections, "section", "Section to print (repeatable or comma separated)")
	flag.Parse()

	// Load configuration
	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(sections) > 0 {
		cfg.Sections = sections
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Options{
		Environment: cfg.Environment,
		Dir:         cfg.LogDir,
		Level:       cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	if cfg.MetricsEnabled {
		metricsCollector = metrics.New(appLogger)
	}

	var recorder lesson.Recorder
	if metricsCollector != nil {
		recorder = metricsCollector
	}

	selected, err := lesson.Select(lesson.Catalog(recorder), cfg.Sections)
	if err != nil {
		appLogger.Error("Failed to select sections", zap.Error(err))
		os.Exit(1)
	}

	runner := lesson.NewRunner(lesson.RunnerOptions{
		Logger:      appLogger,
		Metrics:     metricsCollector,
		BannerWidth: cfg.BannerWidth,
		BannerFill:  cfg.BannerFill,
	})

	if cfg.Schedule == "" {
		if _, err := runner.Run(context.Background(), os.Stdout, selected); err != nil {
			appLogger.Error("Lesson failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	runScheduled(cfg, loader, appLogger, metricsCollector, recorder, runner, selected)
}

func runScheduled(cfg *config.Config, loader *config.Loader, appLogger *logger.Logger, metricsCollector *metrics.Metrics,
	recorder lesson.Recorder, runner *lesson.Runner, selected []lesson.Section) {
	job := scheduler.NewLessonJob(runner, os.Stdout, cfg.Schedule, selected)

	sched := scheduler.NewScheduler(cron.New(), appLogger)
	if err := sched.RegisterJob(job); err != nil {
		appLogger.Fatal("Failed to register cron job", zap.Error(err))
	}

	// Section selection follows config edits; the schedule itself needs a restart
	loader.Watch(func(next *config.Config) {
		picked, err := lesson.Select(lesson.Catalog(recorder), next.Sections)
		if err != nil {
			appLogger.Warn("Ignoring config reload", zap.Error(err))
			return
		}
		job.SetSections(picked)
		appLogger.Info("Config reloaded", zap.Strings("sections", next.Sections))
	}, func(err error) {
		appLogger.Warn("Ignoring invalid config reload", zap.Error(err))
	})

	var server *api.Server
	if metricsCollector != nil {
		server = api.NewServer(&api.ServerOptions{
			Config:  cfg,
			Logger:  appLogger,
			Metrics: metricsCollector,
		})
		go func() {
			if err := server.Start(); err != nil {
				appLogger.Fatal("Failed to start metrics server", zap.Error(err))
			}
		}()
	}

	sched.Start()

	// Set up graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	appLogger.Info("Lesson scheduled", zap.String("schedule", cfg.Schedule))

	// Wait for interrupt signal
	<-done
	appLogger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shut down metrics server", zap.Error(err))
		}
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		appLogger.Error("Failed to stop scheduler", zap.Error(err))
	}

	appLogger.Info("Gracefully stopped")
}
