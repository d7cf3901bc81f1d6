package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewChromeRenderer(t *testing.T) {
	r := NewChromeRenderer(30 * time.Second)
	assert.Equal(t, 30*time.Second, r.navTimeout)
}

func TestSession_Close(t *testing.T) {
	var cancelled []int
	s := &Session{
		cancels: []context.CancelFunc{
			func() { cancelled = append(cancelled, 0) },
			func() { cancelled = append(cancelled, 1) },
		},
	}
	assert.NoError(t, s.Close())
	assert.Equal(t, []int{0, 1}, cancelled)
}
