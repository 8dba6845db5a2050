package lookup

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/filmcard"
)

var _ filmcard.Deliverer = (*WriterDeliverer)(nil)

// WriterDeliverer writes output lines to Out and notifications to Err as
// "error: <message>". The destination is not written.
type WriterDeliverer struct {
	mu  sync.Mutex
	Out io.Writer
	Err io.Writer
}

// NewWriterDeliverer creates a WriterDeliverer.
func NewWriterDeliverer(out, errw io.Writer) *WriterDeliverer {
	return &WriterDeliverer{Out: out, Err: errw}
}

// Deliver writes line followed by a newline.
func (w *WriterDeliverer) Deliver(ctx context.Context, destination, line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintln(w.Out, line)
	return err
}

// Notify writes message as an error line.
func (w *WriterDeliverer) Notify(ctx context.Context, destination, message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.Err, "error: %s\n", message)
	return err
}
