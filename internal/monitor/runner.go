package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SleepFunc blocks for d or until ctx is cancelled, reporting false when the
// wait was cut short.
type SleepFunc func(ctx context.Context, d time.Duration) bool

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// RunOutcome is the terminal state of one full run. It is reported to the
// caller and not persisted anywhere.
type RunOutcome struct {
	Alive            bool
	Attempts         int
	NotificationSent bool
	NotifyErr        error
}

// Runner drives the bounded-retry loop: up to MaxAttempts checks with a fixed
// delay between failed attempts, then a single notification when every
// attempt failed. A run always reaches a terminal state.
type Runner struct {
	checker  Checker
	notifier Notifier
	sleep    SleepFunc
	logger   *zap.Logger
}

func NewRunner(checker Checker, notifier Notifier, sleep SleepFunc, logger *zap.Logger) *Runner {
	if sleep == nil {
		sleep = Sleep
	}
	return &Runner{
		checker:  checker,
		notifier: notifier,
		sleep:    sleep,
		logger:   logger,
	}
}

// Run executes one check run against cfg. It stops on the first alive result,
// otherwise exhausts every attempt and notifies exactly once. A zero
// MaxAttempts runs no attempt and notifies immediately. Cancellation during
// the inter-attempt wait ends the run without a notification.
func (r *Runner) Run(ctx context.Context, cfg CheckConfig) RunOutcome {
	var outcome RunOutcome
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		outcome.Attempts = attempt
		r.logger.Info("starting attempt",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.MaxAttempts),
			zap.String("url", cfg.URL))

		res := r.attempt(ctx, cfg)
		switch res.Status {
		case StatusAlive:
			r.logger.Info("application is alive", zap.Int("attempt", attempt))
			outcome.Alive = true
			return outcome
		case StatusErrored:
			r.logger.Error("attempt errored", zap.Int("attempt", attempt), zap.Error(res.Err))
		default:
			r.logger.Warn("expected text not found", zap.Int("attempt", attempt))
		}

		if attempt < cfg.MaxAttempts {
			r.logger.Info("waiting before next attempt", zap.Duration("delay", cfg.RetryDelay()))
			if !r.sleep(ctx, cfg.RetryDelay()) {
				r.logger.Warn("run cancelled while waiting", zap.Error(ctx.Err()))
				return outcome
			}
		}
	}

	r.logger.Error("application still down after all attempts, sending alert",
		zap.Int("attempts", outcome.Attempts))
	if err := r.notifier.Notify(cfg.Email, cfg.URL, cfg.ExpectedText); err != nil {
		outcome.NotifyErr = err
		r.logger.Error("failed to send alert", zap.Error(err))
		return outcome
	}
	outcome.NotificationSent = true
	return outcome
}

// attempt runs one checker call behind a recover so an unexpected fault is
// counted as an errored attempt instead of aborting the run.
func (r *Runner) attempt(ctx context.Context, cfg CheckConfig) (res AttemptResult) {
	defer func() {
		if p := recover(); p != nil {
			res = AttemptResult{Status: StatusErrored, Err: fmt.Errorf("Runner.attempt: unexpected fault: %v", p)}
		}
	}()
	return r.checker.Check(ctx, cfg.URL, cfg.ExpectedText)
}
