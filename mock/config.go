package mock

import (
	"context"

	"github.com/fwojciec/filmcard"
)

var _ filmcard.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of filmcard.ConfigService.
type ConfigService struct {
	SnapshotFn     func(ctx context.Context, destination string) (*filmcard.OutputConfig, error)
	SetFormatFn    func(ctx context.Context, destination, name, format string) error
	DeleteFormatFn func(ctx context.Context, destination, name string) error
	SetOrderFn     func(ctx context.Context, destination string, spec filmcard.LineSpec) error
	DeleteOrderFn  func(ctx context.Context, destination string) error
	FindSettingsFn func(ctx context.Context, filter filmcard.SettingFilter) ([]*filmcard.Setting, error)
}

func (s *ConfigService) Snapshot(ctx context.Context, destination string) (*filmcard.OutputConfig, error) {
	return s.SnapshotFn(ctx, destination)
}

func (s *ConfigService) SetFormat(ctx context.Context, destination, name, format string) error {
	return s.SetFormatFn(ctx, destination, name, format)
}

func (s *ConfigService) DeleteFormat(ctx context.Context, destination, name string) error {
	return s.DeleteFormatFn(ctx, destination, name)
}

func (s *ConfigService) SetOrder(ctx context.Context, destination string, spec filmcard.LineSpec) error {
	return s.SetOrderFn(ctx, destination, spec)
}

func (s *ConfigService) DeleteOrder(ctx context.Context, destination string) error {
	return s.DeleteOrderFn(ctx, destination)
}

func (s *ConfigService) FindSettings(ctx context.Context, filter filmcard.SettingFilter) ([]*filmcard.Setting, error) {
	return s.FindSettingsFn(ctx, filter)
}
