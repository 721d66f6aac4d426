package utils

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

type SubcommandApplication interface {
	InitFromCli(context.Context, *cli.Context) error
	Name() string
	Start() error
	Close(context.Context)
}

// SubcommandAction runs the given application until an interrupt signal is received.
func SubcommandAction(app SubcommandApplication) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := InitLogger(c); err != nil {
			return err
		}

		ctx, ctxClose := context.WithCancel(context.Background())
		defer ctxClose()

		if err := app.InitFromCli(ctx, c); err != nil {
			return err
		}

		slog.Info("Starting facet deriver application", "name", app.Name())

		if err := app.Start(); err != nil {
			slog.Error("Starting application error", "name", app.Name(), "error", err)
			return err
		}

		defer func() {
			ctxClose()
			app.Close(ctx)
			slog.Info("Application stopped", "name", app.Name())
		}()

		quitCh := make(chan os.Signal, 1)
		signal.Notify(quitCh, []os.Signal{
			os.Interrupt,
			os.Kill,
			syscall.SIGTERM,
			syscall.SIGQUIT,
		}...)
		<-quitCh

		return nil
	}
}

// OneShotAction runs the given application once and closes it.
func OneShotAction(app SubcommandApplication) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := InitLogger(c); err != nil {
			return err
		}

		ctx, ctxClose := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer ctxClose()

		if err := app.InitFromCli(ctx, c); err != nil {
			return err
		}
		defer app.Close(ctx)

		return app.Start()
	}
}
