package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DerivedDeposit is the derived L2 deposit transaction of an L1 Facet transaction.
type DerivedDeposit struct {
	L1TxHash         common.Hash     `json:"l1TxHash"`
	L1BlockHash      common.Hash     `json:"l1BlockHash"`
	L1BlockNumber    uint64          `json:"l1BlockNumber"`
	FacetBlockNumber uint64          `json:"facetBlockNumber"`
	SourceHash       common.Hash     `json:"sourceHash"`
	L2TxHash         common.Hash     `json:"l2TxHash"`
	RawTransaction   hexutil.Bytes   `json:"rawTransaction"`
	From             common.Address  `json:"from"`
	To               *common.Address `json:"to"`
	Mint             *hexutil.Big    `json:"mint"`
	Value            *hexutil.Big    `json:"value"`
	GasFeeCap        *hexutil.Big    `json:"gasFeeCap"`
	Gas              hexutil.Uint64  `json:"gas"`
	Data             hexutil.Bytes   `json:"data"`
	ContractAddress  *common.Address `json:"contractAddress,omitempty"`
}

// DeriveRequest is a request to derive, and persist, the deposit of an L1 transaction.
type DeriveRequest struct {
	L1TxHash    common.Hash `json:"l1TxHash"`
	WithReceipt bool        `json:"withReceipt"`
}

// DecodeRequestBody is the body of a raw deposit transaction decode request.
type DecodeRequestBody struct {
	Raw hexutil.Bytes `json:"raw"`
}
