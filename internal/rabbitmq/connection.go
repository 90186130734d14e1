// Package rabbitmq holds the broker plumbing behind the addressing library:
// dialing the connection an address points at and applying planned topology.
package rabbitmq

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/glimte/amqpaddr-go/endpoint"
)

// BrokerURL derives the connection URL for the broker an address lives on.
// Only the coordinates travel into it; destination options stay behind.
func BrokerURL(a *endpoint.Address) string {
	u := url.URL{
		Scheme: a.Scheme,
		Host:   net.JoinHostPort(a.Host, strconv.Itoa(a.Port)),
	}
	if a.VirtualHost != "/" {
		u.Path = "/" + a.VirtualHost
		u.RawPath = "/" + url.PathEscape(a.VirtualHost)
	}
	return u.String()
}

// ConnectionManager owns a single broker connection.
type ConnectionManager struct {
	url         string
	dialTimeout time.Duration
	logger      *slog.Logger

	mu   sync.RWMutex
	conn *amqp.Connection
}

// ConnectionOption configures the ConnectionManager.
type ConnectionOption func(*ConnectionManager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ConnectionOption {
	return func(cm *ConnectionManager) {
		cm.logger = logger
	}
}

// WithDialTimeout bounds how long Connect waits for the broker.
func WithDialTimeout(timeout time.Duration) ConnectionOption {
	return func(cm *ConnectionManager) {
		cm.dialTimeout = timeout
	}
}

// NewConnectionManager creates a manager for the broker addr points at.
func NewConnectionManager(addr *endpoint.Address, options ...ConnectionOption) *ConnectionManager {
	cm := &ConnectionManager{
		url:         BrokerURL(addr),
		dialTimeout: 30 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(cm)
	}
	return cm
}

// Connect establishes the connection. It is a no-op when already connected.
func (cm *ConnectionManager) Connect(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn != nil && !cm.conn.IsClosed() {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, cm.dialTimeout)
	defer cancel()

	connChan := make(chan *amqp.Connection, 1)
	errChan := make(chan error, 1)
	go func() {
		conn, err := amqp.Dial(cm.url)
		if err != nil {
			errChan <- err
			return
		}
		connChan <- conn
	}()

	select {
	case conn := <-connChan:
		cm.conn = conn
		cm.logger.Info("connected to broker", "url", SanitizeURL(cm.url))
		return nil
	case err := <-errChan:
		cm.logger.Error("broker dial failed", "url", SanitizeURL(cm.url), "error", err)
		return err
	case <-dialCtx.Done():
		return ErrDialTimeout
	}
}

// Channel opens a channel on the managed connection.
func (cm *ConnectionManager) Channel() (*amqp.Channel, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.conn == nil || cm.conn.IsClosed() {
		return nil, ErrNotConnected
	}
	return cm.conn.Channel()
}

// Close shuts the connection down.
func (cm *ConnectionManager) Close() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn == nil {
		return nil
	}
	err := cm.conn.Close()
	cm.conn = nil
	return err
}
