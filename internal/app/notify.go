package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification
type Toast struct {
	Kind    ToastKind
	Message string
	At      time.Time
}

// Notifier collects toasts and hands them to subscribers as they arrive
type Notifier struct {
	log zerolog.Logger

	mu          sync.Mutex
	toasts      []Toast
	subscribers []func(Toast)
}

func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Success(message string) {
	n.push(Toast{Kind: ToastSuccess, Message: message, At: time.Now()})
}

func (n *Notifier) Error(message string) {
	n.push(Toast{Kind: ToastError, Message: message, At: time.Now()})
}

func (n *Notifier) push(t Toast) {
	n.log.Debug().Str("kind", string(t.Kind)).Str("message", t.Message).Msg("Toast")

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	subscribers := make([]func(Toast), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subscribers {
		fn(t)
	}
}

// Toasts returns every toast shown so far
func (n *Notifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

func (n *Notifier) Subscribe(fn func(Toast)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}
