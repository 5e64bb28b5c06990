package mutation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects pending transitions and callback invocations
type recorder struct {
	mu          sync.Mutex
	transitions []bool
	successes   []string
	errs        []error
}

func (r *recorder) pending(p bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, p)
}

func (r *recorder) options() Options[string] {
	return Options[string]{
		OnSuccess: func(out string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.successes = append(r.successes, out)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
	}
}

func echo(delay time.Duration) Func[string, string] {
	return func(ctx context.Context, in string) (string, error) {
		select {
		case <-time.After(delay):
			return "ok:" + in, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func TestMutate_Success(t *testing.T) {
	m := New("echo", echo(20*time.Millisecond), zerolog.Nop())
	rec := &recorder{}
	m.OnPendingChange(rec.pending)

	require.False(t, m.IsPending())

	m.Mutate(context.Background(), "a", rec.options())

	// Pending flips before Mutate returns
	assert.True(t, m.IsPending())

	m.Wait()

	assert.False(t, m.IsPending())
	assert.Equal(t, []bool{true, false}, rec.transitions)
	assert.Equal(t, []string{"ok:a"}, rec.successes)
	assert.Empty(t, rec.errs)
}

func TestMutate_Error(t *testing.T) {
	boom := errors.New("boom")
	m := New("fail", func(ctx context.Context, in string) (string, error) {
		return "", boom
	}, zerolog.Nop())
	rec := &recorder{}
	m.OnPendingChange(rec.pending)

	m.Mutate(context.Background(), "a", rec.options())
	m.Wait()

	assert.False(t, m.IsPending())
	assert.Equal(t, []bool{true, false}, rec.transitions)
	assert.Empty(t, rec.successes)
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], boom)
}

func TestMutate_NilCallbacks(t *testing.T) {
	m := New("echo", echo(time.Millisecond), zerolog.Nop())

	m.Mutate(context.Background(), "a", Options[string]{})
	m.Wait()

	assert.False(t, m.IsPending())
}

func TestMutate_PendingWhileCallbackRuns(t *testing.T) {
	m := New("echo", echo(time.Millisecond), zerolog.Nop())

	var pendingInCallback atomic.Bool
	m.Mutate(context.Background(), "a", Options[string]{
		OnSuccess: func(string) { pendingInCallback.Store(m.IsPending()) },
	})
	m.Wait()

	// Callbacks fire before the pending flag is cleared
	assert.True(t, pendingInCallback.Load())
	assert.False(t, m.IsPending())
}

func TestMutate_OverlappingCallsAreSerialised(t *testing.T) {
	var running, maxRunning atomic.Int32
	var order []string
	var orderMu sync.Mutex

	m := New("serial", func(ctx context.Context, in string) (string, error) {
		n := running.Add(1)
		for {
			cur := maxRunning.Load()
			if n <= cur || maxRunning.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		orderMu.Lock()
		order = append(order, in)
		orderMu.Unlock()
		running.Add(-1)
		return in, nil
	}, zerolog.Nop())

	rec := &recorder{}
	m.OnPendingChange(rec.pending)

	for _, in := range []string{"1", "2", "3", "4"} {
		m.Mutate(context.Background(), in, rec.options())
	}
	assert.True(t, m.IsPending())

	m.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
	assert.Equal(t, []string{"1", "2", "3", "4"}, order)
	assert.Equal(t, []string{"1", "2", "3", "4"}, rec.successes)
	// One pending window covers the whole queue
	assert.Equal(t, []bool{true, false}, rec.transitions)
}

func TestMutate_IndependentInstances(t *testing.T) {
	a := New("a", echo(30*time.Millisecond), zerolog.Nop())
	b := New("b", echo(time.Millisecond), zerolog.Nop())

	a.Mutate(context.Background(), "x", Options[string]{})
	b.Mutate(context.Background(), "y", Options[string]{})

	b.Wait()
	assert.False(t, b.IsPending())
	assert.True(t, a.IsPending())

	a.Wait()
	assert.False(t, a.IsPending())
}

func TestMutate_CancelledContext(t *testing.T) {
	m := New("echo", echo(time.Second), zerolog.Nop())
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	m.Mutate(ctx, "a", rec.options())
	cancel()
	m.Wait()

	assert.Empty(t, rec.successes)
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], context.Canceled)
}

func TestMutate_PanicBecomesError(t *testing.T) {
	m := New("panics", func(ctx context.Context, in string) (string, error) {
		panic("kaboom")
	}, zerolog.Nop())
	rec := &recorder{}

	m.Mutate(context.Background(), "a", rec.options())
	m.Wait()

	require.Len(t, rec.errs, 1)
	assert.Contains(t, rec.errs[0].Error(), "kaboom")
	assert.False(t, m.IsPending())
}
