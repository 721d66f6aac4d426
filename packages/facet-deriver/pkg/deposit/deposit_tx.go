package deposit

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// DepositTxType is the EIP-2718 type byte of a deposit transaction.
const DepositTxType = 0x7e

var ErrInvalidTxType = errors.New("not a deposit transaction")

// DepositTx is an L2 transaction derived from an L1 event rather than signed on L2.
//
// The field order is the RLP field order of the canonical encoding and must not change.
type DepositTx struct {
	// SourceHash uniquely identifies the source of the deposit.
	SourceHash common.Hash
	// L1TxOrigin is the sender of the originating L1 transaction.
	L1TxOrigin common.Address
	From       common.Address
	// nil means contract creation
	To   *common.Address `rlp:"nil"`
	Mint *big.Int
	// Value is transferred from L2 balance, executed after Mint (if any)
	Value     *big.Int
	GasFeeCap *big.Int
	Gas       uint64
	// Always false for Facet transactions, encoded as the RLP empty string.
	IsSystemTransaction bool
	Data                []byte
}

// MarshalBinary returns the canonical encoding: the type byte followed by the RLP list of fields.
func (tx *DepositTx) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(DepositTxType)
	if err := rlp.Encode(&buf, tx); err != nil {
		return nil, fmt.Errorf("failed to encode deposit transaction: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the canonical encoding of a deposit transaction.
func (tx *DepositTx) UnmarshalBinary(b []byte) error {
	if len(b) == 0 || b[0] != DepositTxType {
		return ErrInvalidTxType
	}
	var dec DepositTx
	if err := rlp.DecodeBytes(b[1:], &dec); err != nil {
		return fmt.Errorf("failed to decode deposit transaction: %w", err)
	}
	*tx = dec
	return nil
}

// Hash returns the L2 transaction hash, keccak256(0x7e || rlp(tx)).
func (tx *DepositTx) Hash() common.Hash {
	sha := crypto.NewKeccakState()
	sha.Write([]byte{DepositTxType})
	rlp.Encode(sha, tx)

	var h common.Hash
	sha.Read(h[:])
	return h
}

// Copy creates a deep copy of the transaction.
func (tx *DepositTx) Copy() *DepositTx {
	cpy := &DepositTx{
		SourceHash:          tx.SourceHash,
		L1TxOrigin:          tx.L1TxOrigin,
		From:                tx.From,
		Gas:                 tx.Gas,
		IsSystemTransaction: tx.IsSystemTransaction,
		Data:                common.CopyBytes(tx.Data),
	}
	if tx.To != nil {
		to := *tx.To
		cpy.To = &to
	}
	if tx.Mint != nil {
		cpy.Mint = new(big.Int).Set(tx.Mint)
	}
	if tx.Value != nil {
		cpy.Value = new(big.Int).Set(tx.Value)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap = new(big.Int).Set(tx.GasFeeCap)
	}
	return cpy
}
