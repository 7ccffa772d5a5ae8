// Package notify carries transient user notifications (toasts) from domain
// code back to whichever transport served the request.
package notify

import (
	"context"
	"sync"
)

// Toast is a transient notification shown to the applicant.
type Toast struct {
	Theme     string `json:"theme"`
	Icon      string `json:"icon"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Position  string `json:"position"`
	HideDelay int    `json:"hideDelay"`
}

// Notifier delivers toasts.
type Notifier interface {
	Alert(ctx context.Context, t Toast)
}

// Recorder collects the toasts raised while handling one request.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Toasts returns the toasts recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

type recorderKey struct{}

// WithRecorder returns a context carrying r.
func WithRecorder(ctx context.Context, r *Recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

// FromContext returns the Recorder carried by ctx, or nil.
func FromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(recorderKey{}).(*Recorder)
	return r
}

// ContextNotifier appends toasts to the Recorder in the request context.
// Toasts raised outside a request are dropped.
type ContextNotifier struct{}

func (ContextNotifier) Alert(ctx context.Context, t Toast) {
	r := FromContext(ctx)
	if r == nil {
		return
	}
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}
