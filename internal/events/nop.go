package events

import "github.com/finbooks/accounting-reports/internal/interfaces"

// NopPublisher discards every event. It stands in for kafka when no
// brokers are configured.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) Publish(topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = NopPublisher{}
