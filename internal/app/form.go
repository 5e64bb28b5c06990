package app

import (
	"sync"

	"github.com/taskflow-dev/taskflow/internal/mutation"
)

// form is the submit cycle shared by every form page: validate locally,
// then run the page's mutation and react to its outcome
type form[In, Out any] struct {
	app      *App
	route    Route
	mutation *mutation.Mutation[In, Out]

	// prepare runs before the success toast; an error turns the outcome
	// into a failure
	prepare  func(Out) error
	success  string
	redirect string
	failure  func(error) string

	mu        sync.Mutex
	result    Out
	err       error
	succeeded bool
}

func newForm[In, Out any](a *App, route Route, m *mutation.Mutation[In, Out]) *form[In, Out] {
	a.track(m)
	return &form[In, Out]{app: a, route: route, mutation: m}
}

func (f *form[In, Out]) Route() Route {
	return f.route
}

// Submit validates in and, if it passes, starts the mutation. A
// *forms.ValidationError is returned synchronously and nothing is started.
func (f *form[In, Out]) Submit(in In) error {
	if err := f.app.validator.Validate(in); err != nil {
		return err
	}

	f.mutation.Mutate(f.app.Context(), in, mutation.Options[Out]{
		OnSuccess: f.handleSuccess,
		OnError:   f.handleError,
	})
	return nil
}

func (f *form[In, Out]) handleSuccess(out Out) {
	if f.prepare != nil {
		if err := f.prepare(out); err != nil {
			f.handleError(err)
			return
		}
	}

	f.mu.Lock()
	f.result, f.err, f.succeeded = out, nil, true
	f.mu.Unlock()

	if f.success != "" {
		f.app.notifier.Success(f.success)
	}
	if f.redirect != "" {
		f.app.Navigate(f.redirect)
	}
}

func (f *form[In, Out]) handleError(err error) {
	f.app.log.Error().Err(err).Str("route", f.route.Path).Msg("Submit failed")

	f.mu.Lock()
	f.err, f.succeeded = err, false
	f.mu.Unlock()

	message := err.Error()
	if f.failure != nil {
		message = f.failure(err)
	}
	f.app.notifier.Error(message)
}

// IsPending reports whether a submission is in flight
func (f *form[In, Out]) IsPending() bool {
	return f.mutation.IsPending()
}

// Wait blocks until every submission has settled
func (f *form[In, Out]) Wait() {
	f.mutation.Wait()
}

// Result returns the outcome of the last settled submission
func (f *form[In, Out]) Result() (Out, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}

// Succeeded reports whether the last settled submission succeeded
func (f *form[In, Out]) Succeeded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.succeeded
}

// OnPendingChange exposes the mutation's pending transitions
func (f *form[In, Out]) OnPendingChange(fn func(bool)) {
	f.mutation.OnPendingChange(fn)
}
