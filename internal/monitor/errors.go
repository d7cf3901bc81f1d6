package monitor

import (
	"errors"
	"fmt"
)

// ErrRender marks a transport or rendering failure during a single attempt.
// It is recovered at the attempt boundary and never fatal to a run.
var ErrRender = errors.New("page rendering failed")

// DeliveryError reports an alert that could not be delivered. It does not
// change the terminal outcome of a run.
type DeliveryError struct {
	Host string
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("alert delivery via %s failed: %v", e.Host, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
