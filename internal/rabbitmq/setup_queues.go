package rabbitmq

// ExchangeName — exchange событий жизненного цикла аккаунтов.
const ExchangeName = "account.events"

// Ключи маршрутизации публикуемых событий.
const (
	RoutingKeyOnboardingCompleted = "onboarding.completed"
	RoutingKeySubscriptionUpdated = "subscription.updated"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAccountEventQueues возвращает очереди для внешних воркеров уведомлений.
func GetAccountEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "account.onboarding-completed", RoutingKey: RoutingKeyOnboardingCompleted},
		{QueueName: "account.subscription-updated", RoutingKey: RoutingKeySubscriptionUpdated},
	}
}
