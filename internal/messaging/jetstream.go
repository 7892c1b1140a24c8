package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/logger"
)

const streamEnsureTimeout = 10 * time.Second

type jetstreamPublisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewJetStreamPublisher creates a new NATS JetStream publisher and ensures
// the stream backing the leases.> subjects exists
func NewJetStreamPublisher(url, streamName, connectionName string, opts ...nats.Option) (Publisher, error) {
	opts = append(opts,
		nats.Name(connectionName),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ensureCtx, cancel := context.WithTimeout(context.Background(), streamEnsureTimeout)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(ensureCtx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"leases.>"},
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", streamName, err)
	}

	return &jetstreamPublisher{nc: nc, js: js}, nil
}

// PublishLeaseEvent publishes a lease change event to NATS JetStream
func (p *jetstreamPublisher) PublishLeaseEvent(ctx context.Context, event *domain.LeaseEvent) error {
	logger.Debug("publishing lease event", zap.Any("event", event))

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := fmt.Sprintf("leases.%s", event.EventType)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *jetstreamPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
