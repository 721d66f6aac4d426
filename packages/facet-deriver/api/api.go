package api

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"sync"

	"github.com/labstack/echo/v4"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/db"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/http"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/repo"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/rpc"
)

type API struct {
	srv      *http.Server
	client   *rpc.Client
	queue    queue.Queue
	httpPort uint64
	wg       sync.WaitGroup
}

func (api *API) InitFromCli(ctx context.Context, c *cli.Context) error {
	cfg, err := NewConfigFromCliContext(c)
	if err != nil {
		return err
	}

	return InitFromConfig(ctx, api, cfg)
}

func InitFromConfig(ctx context.Context, api *API, cfg *Config) (err error) {
	svc, client, err := derivation.NewServiceFromConfig(ctx, cfg.Derivation)
	if err != nil {
		return err
	}
	api.client = client

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.WARN)

	opts := http.NewServerOpts{
		Deriver:     svc,
		Echo:        e,
		CorsOrigins: cfg.CORSOrigins,
	}

	if cfg.OpenDBFunc != nil {
		database, err := cfg.OpenDBFunc()
		if err != nil {
			return err
		}

		if cfg.DBMigrate {
			if err := db.Migrate(ctx, database); err != nil {
				return err
			}
		}

		depositRepo, err := repo.NewDepositRepository(database)
		if err != nil {
			return err
		}
		opts.Repo = depositRepo
	} else {
		slog.Warn("no database configured, derived deposits are not persisted")
	}

	if cfg.OpenQueueFunc != nil {
		q, err := cfg.OpenQueueFunc()
		if err != nil {
			return err
		}
		api.queue = q
		opts.Queue = q
	} else {
		slog.Warn("no queue configured, derivation requests can not be queued")
	}

	srv, err := http.NewServer(opts)
	if err != nil {
		return err
	}

	api.srv = srv
	api.httpPort = cfg.HTTPPort

	return nil
}

func (api *API) Name() string {
	return "api"
}

func (api *API) Close(ctx context.Context) {
	if err := api.srv.Shutdown(ctx); err != nil {
		slog.Error("srv shutdown", "error", err)
	}

	api.wg.Wait()

	if api.queue != nil {
		api.queue.Close()
	}

	if api.client != nil {
		api.client.Close()
	}
}

// nolint: funlen
func (api *API) Start() error {
	api.wg.Add(1)

	go func() {
		defer api.wg.Done()

		if err := api.srv.Start(fmt.Sprintf(":%v", api.httpPort)); err != nethttp.ErrServerClosed {
			slog.Error("http srv start", "error", err.Error())
		}
	}()

	return nil
}
