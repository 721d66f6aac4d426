package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	commonCategory  = "COMMON"
	loggingCategory = "LOGGING"
	queueCategory   = "QUEUE"
	dbCategory      = "DATABASE"
	apiCategory     = "API"
	deriveCategory  = "DERIVE"
	indexerCategory = "INDEXER"
)

var (
	L1RPCUrl = &cli.StringFlag{
		Name:     "l1.rpcUrl",
		Usage:    "RPC URL of the L1 chain",
		Required: true,
		Category: commonCategory,
		EnvVars:  []string{"L1_RPC_URL"},
	}
	L2RPCUrl = &cli.StringFlag{
		Name:     "l2.rpcUrl",
		Usage:    "RPC URL of the Facet chain",
		Required: true,
		Category: commonCategory,
		EnvVars:  []string{"L2_RPC_URL"},
	}
	RPCTimeout = &cli.DurationFlag{
		Name:     "rpc.timeout",
		Usage:    "Timeout in seconds for RPC calls",
		Value:    1 * time.Minute,
		Category: commonCategory,
		EnvVars:  []string{"RPC_TIMEOUT"},
	}
	L2CacheSize = &cli.IntFlag{
		Name:     "l2.cacheSize",
		Usage:    "Number of Facet attributes transactions kept in memory, 0 disables the cache",
		Value:    1024,
		Category: commonCategory,
		EnvVars:  []string{"L2_CACHE_SIZE"},
	}
	BlockTime = &cli.Uint64Flag{
		Name:     "facet.blockTime",
		Usage:    "Facet block time in seconds",
		Value:    12,
		Category: commonCategory,
		EnvVars:  []string{"FACET_BLOCK_TIME"},
	}
	CallIndex = &cli.UintFlag{
		Name:     "facet.callIndex",
		Usage:    "Call index mixed into the deposit source hash",
		Value:    0,
		Category: commonCategory,
		EnvVars:  []string{"FACET_CALL_INDEX"},
	}
	LogLevel = &cli.StringFlag{
		Name:     "log.level",
		Usage:    "Log level: trace, debug, info, warn, error, crit",
		Value:    "info",
		Category: loggingCategory,
		EnvVars:  []string{"LOG_LEVEL"},
	}
	LogJSON = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Log in JSON format",
		Value:    false,
		Category: loggingCategory,
		EnvVars:  []string{"LOG_JSON"},
	}
)

// All common flags.
var CommonFlags = []cli.Flag{
	L1RPCUrl,
	L2RPCUrl,
	RPCTimeout,
	L2CacheSize,
	BlockTime,
	CallIndex,
	LogLevel,
	LogJSON,
}

// MergeFlags merges the given flag slices.
func MergeFlags(groups ...[]cli.Flag) []cli.Flag {
	var merged []cli.Flag
	for _, group := range groups {
		merged = append(merged, group...)
	}

	return merged
}
