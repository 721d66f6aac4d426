package http

import "github.com/labstack/echo-contrib/echoprometheus"

func (srv *Server) configureRoutes() {
	srv.echo.GET("/healthz", srv.Health)
	srv.echo.GET("/", srv.Health)
	srv.echo.GET("/metrics", echoprometheus.NewHandler())
	srv.echo.GET("/deposits", srv.ListDeposits)
	srv.echo.GET("/deposits/:l1TxHash", srv.GetDeposit)
	srv.echo.POST("/deposits/decode", srv.DecodeDeposit)
	srv.echo.POST("/queueDerivation", srv.QueueDerivation)
}
