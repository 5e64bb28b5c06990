// Package mutation runs one asynchronous action at a time per instance and
// reports its pending state and outcome to the caller.
package mutation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Func is the operation a mutation wraps
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Options carries the settlement callbacks. Either may be nil.
type Options[Out any] struct {
	OnSuccess func(Out)
	OnError   func(error)
}

// Mutation owns the pending state of one action. Calls made while an earlier
// call is outstanding are queued and run in call order.
type Mutation[In, Out any] struct {
	name string
	fn   Func[In, Out]
	log  zerolog.Logger

	// transition serialises pending changes with their notifications so
	// listeners observe them in order
	transition sync.Mutex

	mu        sync.Mutex
	pending   int
	tail      chan struct{} // closed when the most recently queued call settles
	listeners []func(bool)

	wg sync.WaitGroup
}

// New wraps fn. name is only used for logging.
func New[In, Out any](name string, fn Func[In, Out], log zerolog.Logger) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		name: name,
		fn:   fn,
		log:  log.With().Str("mutation", name).Logger(),
	}
}

// Name returns the mutation name
func (m *Mutation[In, Out]) Name() string {
	return m.name
}

// IsPending reports whether any call is queued or running
func (m *Mutation[In, Out]) IsPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending > 0
}

// OnPendingChange registers fn to be told about every false->true and
// true->false transition of the pending state. fn must not call Mutate.
func (m *Mutation[In, Out]) OnPendingChange(fn func(pending bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Wait blocks until every call made so far has settled
func (m *Mutation[In, Out]) Wait() {
	m.wg.Wait()
}

// Mutate starts the operation and returns immediately. Pending is already
// true when Mutate returns. Exactly one of the callbacks runs on settlement,
// after which pending drops back to false unless more calls are queued.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In, opts Options[Out]) {
	m.wg.Add(1)

	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.Lock()
	m.pending++
	started := m.pending == 1
	prev := m.tail
	done := make(chan struct{})
	m.tail = done
	m.mu.Unlock()

	if started {
		m.notify(true)
	}

	go m.run(ctx, in, opts, prev, done)
}

func (m *Mutation[In, Out]) run(ctx context.Context, in In, opts Options[Out], prev, done chan struct{}) {
	defer m.wg.Done()
	defer close(done)

	if prev != nil {
		<-prev
	}

	start := time.Now()
	out, err := m.call(ctx, in)

	if err != nil {
		m.log.Debug().Err(err).Dur("duration", time.Since(start)).Msg("Mutation failed")
		if opts.OnError != nil {
			opts.OnError(err)
		}
	} else {
		m.log.Debug().Dur("duration", time.Since(start)).Msg("Mutation succeeded")
		if opts.OnSuccess != nil {
			opts.OnSuccess(out)
		}
	}

	m.transition.Lock()
	defer m.transition.Unlock()

	m.mu.Lock()
	m.pending--
	settled := m.pending == 0
	m.mu.Unlock()

	if settled {
		m.notify(false)
	}
}

// call runs fn, turning a cancelled context or a panic into an error
func (m *Mutation[In, Out]) call(ctx context.Context, in In) (out Out, err error) {
	if err := ctx.Err(); err != nil {
		return out, err
	}

	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("Mutation panicked")
			err = fmt.Errorf("mutation %s panicked: %v", m.name, r)
		}
	}()

	return m.fn(ctx, in)
}

func (m *Mutation[In, Out]) notify(pending bool) {
	m.mu.Lock()
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(pending)
	}
}

// Delay waits d or until ctx is done, whichever comes first. Mock services
// use it to simulate network latency.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
