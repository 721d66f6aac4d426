package utils

import (
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
)

// InitLogger sets the default slog and go-ethereum loggers from the logging flags.
func InitLogger(c *cli.Context) error {
	lvl, err := log.LvlFromString(c.String(flags.LogLevel.Name))
	if err != nil {
		return err
	}

	var handler slog.Handler
	if c.Bool(flags.LogJSON.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, lvl)
	} else {
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, lvl, true)
	}

	log.SetDefault(log.NewLogger(handler))
	slog.SetDefault(slog.New(handler))

	return nil
}
