package messaging

import (
	"context"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// Publisher defines the interface for publishing lease change events
type Publisher interface {
	// PublishLeaseEvent publishes a lease change event to the message broker
	PublishLeaseEvent(ctx context.Context, event *domain.LeaseEvent) error
	// Close closes the connection
	Close()
}

// noopPublisher discards events. Used when no broker is configured.
type noopPublisher struct{}

// NewNoopPublisher creates a publisher that discards all events
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (noopPublisher) PublishLeaseEvent(context.Context, *domain.LeaseEvent) error {
	return nil
}

func (noopPublisher) Close() {}
