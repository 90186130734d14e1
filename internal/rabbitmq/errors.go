package rabbitmq

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrNotConnected     = errors.New("rabbitmq: not connected")
	ErrConnectionClosed = errors.New("rabbitmq: connection is closed")
	ErrDialTimeout      = errors.New("rabbitmq: dial timeout")
)

// TopologyError reports a failed declaration step.
type TopologyError struct {
	Component string // exchange, queue or binding
	Name      string
	Op        string
	Err       error
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("rabbitmq: %s %s %q: %v", e.Op, e.Component, e.Name, e.Err)
}

func (e *TopologyError) Unwrap() error {
	return e.Err
}

// SanitizeURL strips credentials from a connection URL before logging.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		u.User = url.User("***")
	}
	return u.String()
}
