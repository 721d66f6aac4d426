package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/metrics"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/repo"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

// GetDeposit returns the derived deposit of an L1 transaction, looked up in the
// cache, then the database, and derived from chain data otherwise.
func (srv *Server) GetDeposit(c echo.Context) error {
	hash, err := parseTxHash(c.Param("l1TxHash"))
	if err != nil {
		return srv.returnError(c, http.StatusBadRequest, err)
	}

	withReceipt, _ := strconv.ParseBool(c.QueryParam("withReceipt"))
	cacheKey := fmt.Sprintf("%s-%t", hash.Hex(), withReceipt)

	if cached, found := srv.cache.Get(cacheKey); found {
		metrics.APIDerivationCacheHits.Inc()
		return c.JSON(http.StatusOK, cached)
	}

	if derived := srv.findStored(c, hash, withReceipt); derived != nil {
		metrics.APIRepositoryHits.Inc()
		srv.cache.Set(cacheKey, derived, cache.DefaultExpiration)
		return c.JSON(http.StatusOK, derived)
	}

	derived, err := srv.deriver.Derive(c.Request().Context(), hash, withReceipt)
	if err != nil {
		return srv.returnError(c, derivationErrorStatus(err), err)
	}

	if srv.repo != nil {
		if err := srv.repo.Save(c.Request().Context(), derived); err != nil {
			slog.Error("failed to save derived deposit", "l1TxHash", hash, "error", err)
		}
	}

	srv.cache.Set(cacheKey, derived, cache.DefaultExpiration)

	return c.JSON(http.StatusOK, derived)
}

// findStored returns the stored deposit when it satisfies the request. A contract creation
// stored without its contract address does not satisfy a receipt request.
func (srv *Server) findStored(c echo.Context, hash common.Hash, withReceipt bool) *types.DerivedDeposit {
	if srv.repo == nil {
		return nil
	}

	derived, err := srv.repo.FindByL1TxHash(c.Request().Context(), hash)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Warn("failed to find stored deposit", "l1TxHash", hash, "error", err)
		}
		return nil
	}

	if withReceipt && derived.To == nil && derived.ContractAddress == nil {
		return nil
	}

	return derived
}

func parseTxHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, ErrInvalidTxHash
	}

	return common.BytesToHash(b), nil
}

func derivationErrorStatus(err error) int {
	switch {
	case errors.Is(err, facet.ErrMalformedInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, facet.ErrChainAccess):
		return http.StatusBadGateway
	case errors.Is(err, facet.ErrResolution):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
