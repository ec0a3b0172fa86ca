package services

// EventPublisher publishes lifecycle events to the message broker.
// Implemented by the RabbitMQ client; mocked in tests. Publish failures are
// logged but never fail the originating operation — the record is already
// committed by the time the event goes out.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
