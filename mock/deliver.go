package mock

import (
	"context"

	"github.com/fwojciec/filmcard"
)

var (
	_ filmcard.Deliverer  = (*Deliverer)(nil)
	_ filmcard.Normalizer = (*Normalizer)(nil)
)

// Deliverer is a mock implementation of filmcard.Deliverer.
type Deliverer struct {
	DeliverFn func(ctx context.Context, destination, line string) error
	NotifyFn  func(ctx context.Context, destination, message string) error
}

func (d *Deliverer) Deliver(ctx context.Context, destination, line string) error {
	return d.DeliverFn(ctx, destination, line)
}

func (d *Deliverer) Notify(ctx context.Context, destination, message string) error {
	return d.NotifyFn(ctx, destination, message)
}

// Normalizer is a mock implementation of filmcard.Normalizer.
type Normalizer struct {
	NormalizeFn func(s string, strip ...string) string
}

func (n *Normalizer) Normalize(s string, strip ...string) string {
	return n.NormalizeFn(s, strip...)
}
