package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"brightline/internal/pkg/logger"
)

// Sink hands a message to whatever actually sends mail.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// LogSink only logs. Used in development and when no broker is configured.
type LogSink struct{}

func (LogSink) Send(ctx context.Context, msg Message) error {
	logger.InfoContext(ctx, "email queued",
		"template", msg.Template,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

// NATSSink publishes messages as JSON for an external mail worker.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

func NewNATSSink(url, subject string) (*NATSSink, error) {
	nc, err := nats.Connect(url,
		nats.Name("brightline-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	logger.Info("NATS mail sink ready", "url", url, "subject", subject)
	return &NATSSink{conn: nc, subject: subject}, nil
}

func (s *NATSSink) Send(_ context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (s *NATSSink) Close() {
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
	}
}
