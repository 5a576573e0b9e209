package interfaces

// EventPublisher emits domain events to downstream consumers. Publishing
// is best-effort from the caller's point of view: a failed publish must
// never fail the request that produced the event.
type EventPublisher interface {
	Publish(topic string, event any) error
}
