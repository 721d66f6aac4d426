package flags

import (
	"github.com/urfave/cli/v2"
)

var (
	DatabaseUsername = &cli.StringFlag{
		Name:     "db.username",
		Usage:    "Database connection username",
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_USER"},
	}
	DatabasePassword = &cli.StringFlag{
		Name:     "db.password",
		Usage:    "Database connection password",
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_PASSWORD"},
	}
	DatabaseHost = &cli.StringFlag{
		Name:     "db.host",
		Usage:    "Database connection host, persistence is disabled when empty",
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_HOST"},
	}
	DatabaseName = &cli.StringFlag{
		Name:     "db.name",
		Usage:    "Database connection name",
		Value:    "facet_deriver",
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_NAME"},
	}
	DatabaseMaxIdleConns = &cli.Uint64Flag{
		Name:     "db.maxIdleConns",
		Usage:    "Max idle connections",
		Value:    50,
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_MAX_IDLE_CONNS"},
	}
	DatabaseMaxOpenConns = &cli.Uint64Flag{
		Name:     "db.maxOpenConns",
		Usage:    "Max open connections",
		Value:    200,
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_MAX_OPEN_CONNS"},
	}
	DatabaseConnMaxLifetime = &cli.Uint64Flag{
		Name:     "db.connMaxLifetime",
		Usage:    "Max connection lifetime in seconds",
		Value:    10,
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_CONN_MAX_LIFETIME"},
	}
	DatabaseMigrate = &cli.BoolFlag{
		Name:     "db.migrate",
		Usage:    "Apply pending schema migrations on start",
		Value:    true,
		Category: dbCategory,
		EnvVars:  []string{"DATABASE_MIGRATE"},
	}
)

var DatabaseFlags = []cli.Flag{
	DatabaseUsername,
	DatabasePassword,
	DatabaseHost,
	DatabaseName,
	DatabaseMaxIdleConns,
	DatabaseMaxOpenConns,
	DatabaseConnMaxLifetime,
	DatabaseMigrate,
}
