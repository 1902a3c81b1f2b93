package constants

// Топология RabbitMQ для доменных событий маркетплейса
const (
	EventsExchangeName = "marketplace.events"
	EventsExchangeType = "topic"
)
