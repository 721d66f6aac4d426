package attributes

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum-optimism/optimism/op-service/solabi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SelectorLength is the length of the function selector prefixing the attributes calldata.
	SelectorLength = 4
	// FieldsLength is the length of the fixed-width fields following the selector.
	FieldsLength = 224
	// MinCalldataLength is the minimum length of a decodable attributes calldata.
	MinCalldataLength = SelectorLength + FieldsLength

	// AttributesFuncSignature is the L1Block method the attributes transaction calls.
	AttributesFuncSignature = "setL1BlockValuesEcotone()"
)

var (
	AttributesFuncBytes4 = crypto.Keccak256([]byte(AttributesFuncSignature))[:SelectorLength]

	ErrMalformedAttributes = errors.New("malformed block attributes calldata")
)

// BlockAttributes presents the values carried by the first (attributes) transaction of a Facet block.
type BlockAttributes struct {
	BaseFeeScalar     uint32
	BlobBaseFeeScalar uint32
	SequenceNumber    uint64
	Timestamp         uint64
	Number            uint64
	BaseFee           *big.Int
	BlobBaseFee       *big.Int
	BlockHash         common.Hash
	BatcherHash       common.Hash
	FctMintedPerGas   *big.Int
	TotalFctMinted    *big.Int
}

// Binary Format
// +---------+--------------------------+
// | Bytes   | Field                    |
// +---------+--------------------------+
// | 4       | Function signature       |
// | 4       | BaseFeeScalar            |
// | 4       | BlobBaseFeeScalar        |
// | 8       | SequenceNumber           |
// | 8       | Timestamp                |
// | 8       | L1BlockNumber            |
// | 32      | BaseFee                  |
// | 32      | BlobBaseFee              |
// | 32      | BlockHash                |
// | 32      | BatcherHash              |
// | 32      | FctMintedPerGas          |
// | 32      | TotalFctMinted           |
// +---------+--------------------------+

// DecodeAttributes decodes the calldata of a Facet block attributes transaction. Bytes after the
// fixed-width fields are ignored.
func DecodeAttributes(calldata []byte) (*BlockAttributes, error) {
	if len(calldata) < MinCalldataLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedAttributes, len(calldata), MinCalldataLength)
	}

	var (
		attrs BlockAttributes
		r     = bytes.NewReader(calldata[SelectorLength:MinCalldataLength])
		err   error
	)
	if err := binary.Read(r, binary.BigEndian, &attrs.BaseFeeScalar); err != nil {
		return nil, fmt.Errorf("%w: base fee scalar: %w", ErrMalformedAttributes, err)
	}
	if err := binary.Read(r, binary.BigEndian, &attrs.BlobBaseFeeScalar); err != nil {
		return nil, fmt.Errorf("%w: blob base fee scalar: %w", ErrMalformedAttributes, err)
	}
	if err := binary.Read(r, binary.BigEndian, &attrs.SequenceNumber); err != nil {
		return nil, fmt.Errorf("%w: sequence number: %w", ErrMalformedAttributes, err)
	}
	if err := binary.Read(r, binary.BigEndian, &attrs.Timestamp); err != nil {
		return nil, fmt.Errorf("%w: timestamp: %w", ErrMalformedAttributes, err)
	}
	if err := binary.Read(r, binary.BigEndian, &attrs.Number); err != nil {
		return nil, fmt.Errorf("%w: number: %w", ErrMalformedAttributes, err)
	}
	if attrs.BaseFee, err = solabi.ReadUint256(r); err != nil {
		return nil, fmt.Errorf("%w: base fee: %w", ErrMalformedAttributes, err)
	}
	if attrs.BlobBaseFee, err = solabi.ReadUint256(r); err != nil {
		return nil, fmt.Errorf("%w: blob base fee: %w", ErrMalformedAttributes, err)
	}
	if attrs.BlockHash, err = solabi.ReadHash(r); err != nil {
		return nil, fmt.Errorf("%w: block hash: %w", ErrMalformedAttributes, err)
	}
	if attrs.BatcherHash, err = solabi.ReadHash(r); err != nil {
		return nil, fmt.Errorf("%w: batcher hash: %w", ErrMalformedAttributes, err)
	}
	if attrs.FctMintedPerGas, err = solabi.ReadUint256(r); err != nil {
		return nil, fmt.Errorf("%w: fct minted per gas: %w", ErrMalformedAttributes, err)
	}
	if attrs.TotalFctMinted, err = solabi.ReadUint256(r); err != nil {
		return nil, fmt.Errorf("%w: total fct minted: %w", ErrMalformedAttributes, err)
	}

	return &attrs, nil
}

// MarshalBinary encodes the attributes into the attributes transaction calldata layout.
func (attrs *BlockAttributes) MarshalBinary() ([]byte, error) {
	w := bytes.NewBuffer(make([]byte, 0, MinCalldataLength))
	if err := solabi.WriteSignature(w, AttributesFuncBytes4); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.BigEndian, attrs.BaseFeeScalar); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.BigEndian, attrs.BlobBaseFeeScalar); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.BigEndian, attrs.SequenceNumber); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.BigEndian, attrs.Timestamp); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.BigEndian, attrs.Number); err != nil {
		return nil, err
	}
	for _, n := range []*big.Int{attrs.BaseFee, attrs.BlobBaseFee} {
		if err := solabi.WriteUint256(w, orZero(n)); err != nil {
			return nil, err
		}
	}
	if err := solabi.WriteHash(w, attrs.BlockHash); err != nil {
		return nil, err
	}
	if err := solabi.WriteHash(w, attrs.BatcherHash); err != nil {
		return nil, err
	}
	for _, n := range []*big.Int{attrs.FctMintedPerGas, attrs.TotalFctMinted} {
		if err := solabi.WriteUint256(w, orZero(n)); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func orZero(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return n
}
