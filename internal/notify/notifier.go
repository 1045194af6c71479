// Package notify abstracts user-visible notifications. The rendering layer
// decides presentation; the core only emits.
package notify

import (
	"context"
	"sync"

	"github.com/eshmelev/dropspace/internal/logging"
)

// Notifier receives user-visible messages emitted by the core.
type Notifier interface {
	Info(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// LogNotifier renders notifications through the structured logger.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "notify")}
}

func (n *LogNotifier) Info(ctx context.Context, msg string) {
	n.log.Info(ctx, msg)
}

func (n *LogNotifier) Error(ctx context.Context, msg string) {
	n.log.Error(ctx, msg)
}

// Recorder collects notifications for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	Infos  []string
	Errors []string
}

func (r *Recorder) Info(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

func (r *Recorder) Error(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
