package derivation

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func toHexBig(n *big.Int) *hexutil.Big {
	if n == nil {
		return (*hexutil.Big)(new(big.Int))
	}
	return (*hexutil.Big)(new(big.Int).Set(n))
}
