package testutils

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/attributes"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
)

// StubL1 is an in-memory L1 chain serving observed transactions.
type StubL1 struct {
	mu  sync.RWMutex
	txs map[common.Hash]*facet.L1Transaction

	// Err, when set, is returned by every read.
	Err error
}

// NewStubL1 creates a stub L1 chain holding the given transactions.
func NewStubL1(txs ...*facet.L1Transaction) *StubL1 {
	s := &StubL1{txs: make(map[common.Hash]*facet.L1Transaction)}
	for _, tx := range txs {
		s.Add(tx)
	}
	return s
}

// Add registers an L1 transaction.
func (s *StubL1) Add(tx *facet.L1Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[tx.Hash] = tx
}

func (s *StubL1) L1Transaction(_ context.Context, hash common.Hash) (*facet.L1Transaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return tx, nil
}

// StubL2 is an in-memory Facet chain serving headers, attributes transactions and receipts.
type StubL2 struct {
	mu       sync.RWMutex
	headers  map[uint64]*types.Header
	inputs   map[uint64][]byte
	receipts map[common.Hash]*types.Receipt

	calls atomic.Int64

	// Err, when set, is returned by every read.
	Err error
}

// NewStubL2 creates a stub chain whose block 1 carries the given genesis timestamp.
func NewStubL2(genesisTimestamp uint64) *StubL2 {
	s := &StubL2{
		headers:  make(map[uint64]*types.Header),
		inputs:   make(map[uint64][]byte),
		receipts: make(map[common.Hash]*types.Receipt),
	}
	s.AddBlock(1, big.NewInt(1), &attributes.BlockAttributes{
		Timestamp:       genesisTimestamp,
		FctMintedPerGas: big.NewInt(1),
	})
	return s
}

// AddBlock registers a Facet block with the given base fee and attributes.
func (s *StubL2) AddBlock(number uint64, baseFee *big.Int, attrs *attributes.BlockAttributes) {
	input, err := attrs.MarshalBinary()
	if err != nil {
		panic(err)
	}
	s.SetAttributesInput(number, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[number] = &types.Header{Number: new(big.Int).SetUint64(number), BaseFee: baseFee}
}

// SetAttributesInput overrides the raw input of the attributes transaction of a block.
func (s *StubL2) SetAttributesInput(number uint64, input []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs[number] = input
}

// AddReceipt registers a receipt for the given L2 transaction hash.
func (s *StubL2) AddReceipt(hash common.Hash, receipt *types.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[hash] = receipt
}

// Calls returns the number of reads served so far.
func (s *StubL2) Calls() int {
	return int(s.calls.Load())
}

func (s *StubL2) HeaderByNumber(_ context.Context, number *big.Int) (*types.Header, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	header, ok := s.headers[number.Uint64()]
	if !ok {
		return nil, ethereum.NotFound
	}
	return types.CopyHeader(header), nil
}

func (s *StubL2) TransactionInputByIndex(_ context.Context, blockNumber uint64, index uint) ([]byte, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	if index != 0 {
		return nil, fmt.Errorf("stub only serves attributes transactions, got index %d", index)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	input, ok := s.inputs[blockNumber]
	if !ok {
		return nil, ethereum.NotFound
	}
	return input, nil
}

func (s *StubL2) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	receipt, ok := s.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

// FacetTxInput encodes the given items as a Facet transaction, `0x46 || rlp(items)`.
func FacetTxInput(items ...interface{}) []byte {
	encoded, err := rlp.EncodeToBytes(items)
	if err != nil {
		panic(err)
	}
	return append([]byte{0x46}, encoded...)
}
