package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/filmcard"
)

// Ensure LoggingConfigService implements filmcard.ConfigService.
var _ filmcard.ConfigService = (*LoggingConfigService)(nil)

// LoggingConfigService wraps a ConfigService with logging. Reads are
// logged at debug level and writes at info level.
type LoggingConfigService struct {
	next   filmcard.ConfigService
	logger *slog.Logger
}

// NewLoggingConfigService creates a new LoggingConfigService.
func NewLoggingConfigService(next filmcard.ConfigService, logger *slog.Logger) *LoggingConfigService {
	return &LoggingConfigService{next: next, logger: logger}
}

func (s *LoggingConfigService) Snapshot(ctx context.Context, destination string) (cfg *filmcard.OutputConfig, err error) {
	defer func(begin time.Time) {
		var version uint64
		if cfg != nil {
			version = cfg.Version
		}
		s.logger.Debug("config snapshot",
			"destination", destination,
			"version", version,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Snapshot(ctx, destination)
}

func (s *LoggingConfigService) SetFormat(ctx context.Context, destination, name, format string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config set format",
			"destination", destination,
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SetFormat(ctx, destination, name, format)
}

func (s *LoggingConfigService) DeleteFormat(ctx context.Context, destination, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config delete format",
			"destination", destination,
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteFormat(ctx, destination, name)
}

func (s *LoggingConfigService) SetOrder(ctx context.Context, destination string, spec filmcard.LineSpec) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config set order",
			"destination", destination,
			"order", spec.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SetOrder(ctx, destination, spec)
}

func (s *LoggingConfigService) DeleteOrder(ctx context.Context, destination string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("config delete order",
			"destination", destination,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteOrder(ctx, destination)
}

func (s *LoggingConfigService) FindSettings(ctx context.Context, filter filmcard.SettingFilter) (settings []*filmcard.Setting, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("config find settings",
			"count", len(settings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSettings(ctx, filter)
}
