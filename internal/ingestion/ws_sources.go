package ingestion

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"bsc-pair-indexer/internal/domain"
)

// WSConfig configures WebSocket feed behavior.
type WSConfig struct {
	// ReconnectDelay is initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing control frames.
	WriteTimeout time.Duration
}

// DefaultWSConfig returns default WebSocket configuration.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// WSEventSource consumes the live JSON event feed over WebSocket, one event
// per text message. It reconnects with exponential backoff; the ordering
// cursor downstream absorbs any duplicates a reconnect replays.
type WSEventSource struct {
	endpoint string
	config   WSConfig
	logger   *log.Logger
	closed   atomic.Bool
}

// NewWSEventSource creates a WebSocket event source for the given endpoint.
func NewWSEventSource(endpoint string, config *WSConfig, logger *log.Logger) *WSEventSource {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WSEventSource{endpoint: endpoint, config: cfg, logger: logger}
}

// Subscribe connects to the feed and returns the event channel. The channel
// is closed when the context is cancelled or the source is closed.
func (s *WSEventSource) Subscribe(ctx context.Context) (<-chan domain.Event, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	eventsCh := make(chan domain.Event, 100)
	go s.readLoop(ctx, conn, eventsCh)
	return eventsCh, nil
}

// Close stops the read loop at the next reconnect check.
func (s *WSEventSource) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *WSEventSource) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", s.endpoint, err)
	}
	return conn, nil
}

// startPinger sends ping frames on the configured interval until stopped.
// It is the connection's only writer; the read loop never writes, so no
// write lock is needed.
func (s *WSEventSource) startPinger(conn *websocket.Conn) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.config.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
					s.logger.Printf("[ws] set write deadline: %v", err)
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					s.logger.Printf("[ws] ping failed: %v", err)
					return
				}
			}
		}
	}()
	return func() { close(done) }
}

func (s *WSEventSource) readLoop(ctx context.Context, conn *websocket.Conn, eventsCh chan<- domain.Event) {
	defer close(eventsCh)

	reconnectDelay := s.config.ReconnectDelay
	stopPing := s.startPinger(conn)
	defer func() { stopPing() }()

	for {
		if ctx.Err() != nil || s.closed.Load() {
			conn.Close()
			return
		}

		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			stopPing()
			stopPing = func() {} // a failed redial loops back here with no pinger running
			conn.Close()
			if ctx.Err() != nil || s.closed.Load() {
				return
			}
			s.logger.Printf("[ws] read failed, reconnecting in %v: %v", reconnectDelay, err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}

			reconnectDelay *= 2
			if reconnectDelay > s.config.MaxReconnectDelay {
				reconnectDelay = s.config.MaxReconnectDelay
			}

			next, dialErr := s.dial(ctx)
			if dialErr != nil {
				s.logger.Printf("[ws] reconnect failed: %v", dialErr)
				continue
			}
			conn = next
			stopPing = s.startPinger(conn)
			continue
		}

		// Reset delay on successful read.
		reconnectDelay = s.config.ReconnectDelay

		event, err := DecodeEvent(message)
		if err != nil {
			s.logger.Printf("[ws] dropping malformed message: %v", err)
			continue
		}

		select {
		case eventsCh <- event:
		case <-ctx.Done():
			conn.Close()
			return
		}
	}
}
