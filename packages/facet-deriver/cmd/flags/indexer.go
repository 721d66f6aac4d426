package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	BackOffRetryInterval = &cli.DurationFlag{
		Name:     "backoff.retryInterval",
		Usage:    "Retry interval in seconds when there is an error",
		Value:    12 * time.Second,
		Category: indexerCategory,
		EnvVars:  []string{"BACKOFF_RETRY_INTERVAL"},
	}
	BackOffMaxRetries = &cli.Uint64Flag{
		Name:     "backoff.maxRetries",
		Usage:    "Max retry times when there is an error",
		Value:    10,
		Category: indexerCategory,
		EnvVars:  []string{"BACKOFF_MAX_RETRIES"},
	}
	IndexerWorkers = &cli.Uint64Flag{
		Name:     "indexer.workers",
		Usage:    "Number of derivation requests processed concurrently",
		Value:    4,
		Category: indexerCategory,
		EnvVars:  []string{"INDEXER_WORKERS"},
	}
)

var IndexerFlags = MergeFlags(CommonFlags, QueueFlags, DatabaseFlags, []cli.Flag{
	BackOffRetryInterval,
	BackOffMaxRetries,
	IndexerWorkers,
})
