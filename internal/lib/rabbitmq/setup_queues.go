package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.dues", RoutingKey: "dues"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
