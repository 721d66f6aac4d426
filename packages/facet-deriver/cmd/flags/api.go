package flags

import (
	"github.com/urfave/cli/v2"
)

var (
	HTTPPort = &cli.Uint64Flag{
		Name:     "http.port",
		Usage:    "Port to run HTTP server on",
		Value:    4102,
		Category: apiCategory,
		EnvVars:  []string{"HTTP_PORT"},
	}
	CORSOrigins = &cli.StringFlag{
		Name:     "http.corsOrigins",
		Usage:    "Comma-delinated list of cors origins",
		Value:    "*",
		Category: apiCategory,
		EnvVars:  []string{"HTTP_CORS_ORIGINS"},
	}
)

var APIFlags = MergeFlags(CommonFlags, QueueFlags, DatabaseFlags, []cli.Flag{
	HTTPPort,
	CORSOrigins,
})
