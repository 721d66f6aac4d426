package facet

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

const (
	// FacetTxType is the type byte prefixing a Facet transaction in L1 calldata.
	FacetTxType = 0x46
	// MaxTransactionFields is the maximum number of RLP items of a Facet transaction.
	MaxTransactionFields = 7
)

// Positions of the RLP items of a Facet transaction. Positions 0 and 6 are reserved.
const (
	toField = iota + 1
	valueField
	maxFeePerGasField
	gasLimitField
	dataField
)

// L1Transaction is an observed L1 transaction together with its inclusion metadata.
type L1Transaction struct {
	From           common.Address
	To             *common.Address
	Input          []byte
	Hash           common.Hash
	BlockHash      common.Hash
	GasUsed        uint64
	BaseFee        *big.Int
	BlockNumber    uint64
	BlockTimestamp uint64
}

// Transaction is the Facet transaction embedded in the input of an L1 transaction.
type Transaction struct {
	To           *common.Address // nil means contract creation
	Value        *big.Int
	MaxFeePerGas *big.Int // nil when not specified
	GasLimit     uint64
	Data         []byte
}

// ParseTransaction decodes a Facet transaction, `0x46 || rlp([...])`, from L1 calldata.
// Missing or empty items resolve to their zero defaults.
func ParseTransaction(input []byte) (*Transaction, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidTypeMarker)
	}
	if input[0] != FacetTxType {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidTypeMarker, input[0])
	}

	items, err := splitItems(input[1:])
	if err != nil {
		return nil, err
	}

	tx := &Transaction{Value: new(big.Int), Data: []byte{}}

	if to := items[toField]; len(to) != 0 {
		if len(to) != common.AddressLength {
			return nil, fmt.Errorf("%w: invalid recipient length %d", ErrMalformedTransaction, len(to))
		}
		addr := common.BytesToAddress(to)
		tx.To = &addr
	}
	if value := items[valueField]; len(value) != 0 {
		tx.Value.SetBytes(value)
	}
	if maxFee := items[maxFeePerGasField]; len(maxFee) != 0 {
		tx.MaxFeePerGas = new(big.Int).SetBytes(maxFee)
	}
	if gas := items[gasLimitField]; len(gas) != 0 {
		gasLimit := new(big.Int).SetBytes(gas)
		if !gasLimit.IsUint64() {
			return nil, fmt.Errorf("%w: gas limit %v overflows uint64", ErrMalformedTransaction, gasLimit)
		}
		tx.GasLimit = gasLimit.Uint64()
	}
	if data := items[dataField]; len(data) != 0 {
		tx.Data = common.CopyBytes(data)
	}

	return tx, nil
}

// splitItems splits the RLP list into at most MaxTransactionFields string items. Nested lists
// are treated as absent.
func splitItems(b []byte) ([MaxTransactionFields][]byte, error) {
	var items [MaxTransactionFields][]byte

	content, rest, err := rlp.SplitList(b)
	if err != nil {
		return items, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	if len(rest) != 0 {
		return items, fmt.Errorf("%w: %d trailing bytes after list", ErrMalformedTransaction, len(rest))
	}

	count, err := rlp.CountValues(content)
	if err != nil {
		return items, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	if count > MaxTransactionFields {
		return items, fmt.Errorf("%w: %d fields, at most %d allowed", ErrMalformedTransaction, count, MaxTransactionFields)
	}

	for i := 0; len(content) > 0; i++ {
		kind, val, tail, err := rlp.Split(content)
		if err != nil {
			return items, fmt.Errorf("%w: field %d: %w", ErrMalformedTransaction, i, err)
		}
		if kind != rlp.List {
			items[i] = val
		}
		content = tail
	}

	return items, nil
}
