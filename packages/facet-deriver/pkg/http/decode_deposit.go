package http

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/deposit"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

type decodedDeposit struct {
	Hash                common.Hash     `json:"hash"`
	SourceHash          common.Hash     `json:"sourceHash"`
	L1TxOrigin          common.Address  `json:"l1TxOrigin"`
	From                common.Address  `json:"from"`
	To                  *common.Address `json:"to"`
	Mint                *hexutil.Big    `json:"mint"`
	Value               *hexutil.Big    `json:"value"`
	GasFeeCap           *hexutil.Big    `json:"gasFeeCap"`
	Gas                 hexutil.Uint64  `json:"gas"`
	IsSystemTransaction bool            `json:"isSystemTransaction"`
	Data                hexutil.Bytes   `json:"data"`
}

// DecodeDeposit decodes a raw deposit transaction, `0x7e || rlp(...)`.
func (srv *Server) DecodeDeposit(c echo.Context) error {
	reqBody := new(types.DecodeRequestBody)
	if err := c.Bind(reqBody); err != nil {
		return srv.returnError(c, http.StatusUnprocessableEntity, err)
	}

	if len(reqBody.Raw) == 0 {
		return srv.returnError(c, http.StatusBadRequest, ErrEmptyRawTransaction)
	}

	var dep deposit.DepositTx
	if err := dep.UnmarshalBinary(reqBody.Raw); err != nil {
		return srv.returnError(c, http.StatusUnprocessableEntity, err)
	}

	return c.JSON(http.StatusOK, &decodedDeposit{
		Hash:                dep.Hash(),
		SourceHash:          dep.SourceHash,
		L1TxOrigin:          dep.L1TxOrigin,
		From:                dep.From,
		To:                  dep.To,
		Mint:                (*hexutil.Big)(dep.Mint),
		Value:               (*hexutil.Big)(dep.Value),
		GasFeeCap:           (*hexutil.Big)(dep.GasFeeCap),
		Gas:                 hexutil.Uint64(dep.Gas),
		IsSystemTransaction: dep.IsSystemTransaction,
		Data:                dep.Data,
	})
}
