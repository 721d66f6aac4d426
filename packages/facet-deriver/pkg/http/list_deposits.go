package http

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// ListDeposits returns the stored deposits sent by the L1 account in the from query parameter,
// paginated by the page and size query parameters.
func (srv *Server) ListDeposits(c echo.Context) error {
	if srv.repo == nil {
		return srv.returnError(c, http.StatusServiceUnavailable, ErrNoRepository)
	}

	from := c.QueryParam("from")
	if !common.IsHexAddress(from) {
		return srv.returnError(c, http.StatusBadRequest, ErrInvalidAddress)
	}

	page, err := srv.repo.FindAllByFromAddress(c.Request().Context(), c.Request(), common.HexToAddress(from))
	if err != nil {
		return srv.returnError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, page)
}
