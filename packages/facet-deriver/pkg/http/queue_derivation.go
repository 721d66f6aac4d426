package http

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

// QueueDerivation publishes a derivation request for the indexer.
func (srv *Server) QueueDerivation(c echo.Context) error {
	reqBody := new(types.DeriveRequest)
	if err := c.Bind(reqBody); err != nil {
		return srv.returnError(c, http.StatusUnprocessableEntity, err)
	}

	if reqBody.L1TxHash == (common.Hash{}) {
		return srv.returnError(c, http.StatusBadRequest, ErrInvalidTxHash)
	}

	if srv.queue == nil {
		return srv.returnError(c, http.StatusServiceUnavailable, ErrNoQueue)
	}

	if err := srv.queue.Publish(c.Request().Context(), *reqBody); err != nil {
		return srv.returnError(c, http.StatusInternalServerError, errors.New("unable to queue derivation"))
	}

	return c.JSON(http.StatusOK, reqBody)
}
