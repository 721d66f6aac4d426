package http

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/cyberhorsey/webutils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4/middleware"
	"github.com/morkid/paginate"
	"github.com/patrickmn/go-cache"

	echo "github.com/labstack/echo/v4"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/queue"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

// Deriver derives deposit transactions of L1 Facet transactions.
type Deriver interface {
	Derive(ctx context.Context, l1TxHash common.Hash, withReceipt bool) (*types.DerivedDeposit, error)
}

// DepositStore persists derived deposits.
type DepositStore interface {
	Save(ctx context.Context, derived *types.DerivedDeposit) error
	FindByL1TxHash(ctx context.Context, hash common.Hash) (*types.DerivedDeposit, error)
	FindAllByFromAddress(ctx context.Context, req *http.Request, from common.Address) (*paginate.Page, error)
}

// Registered once per process, the collectors live in the default registry.
var prometheusMiddleware = echoprometheus.NewMiddleware("facet_deriver")

type Server struct {
	deriver Deriver
	repo    DepositStore
	queue   queue.Queue
	echo    *echo.Echo
	cache   *cache.Cache
}

type NewServerOpts struct {
	Deriver     Deriver
	Repo        DepositStore
	Queue       queue.Queue
	Echo        *echo.Echo
	CorsOrigins []string
}

func (opts NewServerOpts) Validate() error {
	if opts.Echo == nil {
		return ErrNoHTTPFramework
	}

	if opts.Deriver == nil {
		return ErrNoDeriver
	}

	return nil
}

func NewServer(opts NewServerOpts) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cache := cache.New(5*time.Minute, 10*time.Minute)

	srv := &Server{
		deriver: opts.Deriver,
		repo:    opts.Repo,
		queue:   opts.Queue,
		echo:    opts.Echo,
		cache:   cache,
	}

	corsOrigins := opts.CorsOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"*"}
	}

	srv.configureMiddleware(corsOrigins)
	srv.configureRoutes()

	return srv, nil
}

// Start starts the HTTP server
func (srv *Server) Start(address string) error {
	return srv.echo.Start(address)
}

// Shutdown shuts down the HTTP server
func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.echo.Shutdown(ctx)
}

// ServeHTTP implements the `http.Handler` interface which serves HTTP requests
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.echo.ServeHTTP(w, r)
}

// Health endpoints for probes
func (srv *Server) Health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (srv *Server) returnError(c echo.Context, statusCode int, err error) error {
	return webutils.LogAndRenderErrors(c, statusCode, err)
}

func LogSkipper(c echo.Context) bool {
	switch c.Request().URL.Path {
	case "/healthz":
		return true
	case "/metrics":
		return true
	default:
		return false
	}
}

func (srv *Server) configureMiddleware(corsOrigins []string) {
	srv.echo.Use(middleware.RequestID())
	srv.echo.Use(prometheusMiddleware)

	srv.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: LogSkipper,
		Format: `{"time":"${time_rfc3339_nano}","level":"INFO","message":{"id":"${id}","remote_ip":"${remote_ip}",` + //nolint:lll
			`"host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}",` + //nolint:lll
			`"response_status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}",` +
			`"bytes_in":${bytes_in},"bytes_out":${bytes_out}}}` + "\n",
		Output: os.Stdout,
	}))

	srv.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
	}))
}
