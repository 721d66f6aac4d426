package flags

import (
	"github.com/urfave/cli/v2"
)

var (
	QueueUsername = &cli.StringFlag{
		Name:     "queue.username",
		Usage:    "Queue connection username",
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_USER"},
	}
	QueuePassword = &cli.StringFlag{
		Name:     "queue.password",
		Usage:    "Queue connection password",
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_PASSWORD"},
	}
	QueueHost = &cli.StringFlag{
		Name:     "queue.host",
		Usage:    "Queue connection host, the queue is disabled when empty",
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_HOST"},
	}
	QueuePort = &cli.Uint64Flag{
		Name:     "queue.port",
		Usage:    "Queue connection port",
		Value:    5672,
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_PORT"},
	}
	QueueName = &cli.StringFlag{
		Name:     "queue.name",
		Usage:    "Name of the derivation request queue",
		Value:    "facet-deriver-requests",
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_NAME"},
	}
	QueuePrefetchCount = &cli.Uint64Flag{
		Name:     "queue.prefetch",
		Usage:    "How many messages to prefetch",
		Value:    10,
		Category: queueCategory,
		EnvVars:  []string{"QUEUE_PREFETCH_COUNT"},
	}
)

var QueueFlags = []cli.Flag{
	QueueUsername,
	QueuePassword,
	QueueHost,
	QueuePort,
	QueueName,
	QueuePrefetchCount,
}
