package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sanketkurve/portfolio-backend/errs"
)

// Dispatcher runs notification sends in the background. Failures are
// logged and never reach the caller.
type Dispatcher struct {
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		timeout: timeout,
		logger:  logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch starts job in its own goroutine with a bounded context. It does
// not inherit the caller's context, so it outlives the HTTP request.
func (d *Dispatcher) Dispatch(name string, job func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Str("job", name).Interface("panic", r).Msg("notification job panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			event := d.logger.Error().Err(err).Str("job", name).Dur("elapsed", time.Since(start))
			var apiErr *errs.ApiErr
			if errors.As(err, &apiErr) {
				event = event.Str("cause", apiErr.GetFullError())
			}
			event.Msg("notification failed")
			return
		}
		d.logger.Debug().Str("job", name).Dur("elapsed", time.Since(start)).Msg("notification sent")
	}()
}

// Wait blocks until in-flight jobs finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
