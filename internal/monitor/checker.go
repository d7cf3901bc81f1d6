package monitor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	StatusAlive    = "alive"
	StatusNotAlive = "not_alive"
	StatusErrored  = "errored"
)

// AttemptResult is the outcome of a single check attempt. Err is set only for
// StatusErrored. The runner treats not_alive and errored the same; the split
// exists for logging.
type AttemptResult struct {
	Status string
	Err    error
}

func (r AttemptResult) Alive() bool {
	return r.Status == StatusAlive
}

// Session is one exclusive rendering session. PageSource returns the fully
// rendered document for url.
type Session interface {
	PageSource(url string) (string, error)
	Close() error
}

// Renderer opens rendering sessions. The caller owns the returned session and
// must close it.
type Renderer interface {
	NewSession(ctx context.Context) (Session, error)
}

// Checker performs one liveness attempt against a target page.
type Checker interface {
	Check(ctx context.Context, url string, expectedText string) AttemptResult
}

type livenessChecker struct {
	renderer Renderer
	logger   *zap.Logger
}

// Check opens one session, fetches the page and tests for expectedText with a
// case-sensitive substring match. The session is released on every exit path.
// No retries happen at this layer.
func (c *livenessChecker) Check(ctx context.Context, url string, expectedText string) AttemptResult {
	sess, err := c.renderer.NewSession(ctx)
	if err != nil {
		return AttemptResult{Status: StatusErrored, Err: fmt.Errorf("LivenessChecker.Check: %w: %w", ErrRender, err)}
	}
	defer func() {
		if e := sess.Close(); e != nil {
			c.logger.Warn("failed to close rendering session", zap.Error(e))
		}
	}()

	page, err := sess.PageSource(url)
	if err != nil {
		return AttemptResult{Status: StatusErrored, Err: fmt.Errorf("LivenessChecker.Check: %w: %w", ErrRender, err)}
	}
	if strings.Contains(page, expectedText) {
		return AttemptResult{Status: StatusAlive}
	}
	return AttemptResult{Status: StatusNotAlive}
}

func NewLivenessChecker(renderer Renderer, logger *zap.Logger) Checker {
	return &livenessChecker{
		renderer: renderer,
		logger:   logger,
	}
}
