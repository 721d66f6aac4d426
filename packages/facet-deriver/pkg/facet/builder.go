package facet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/attributes"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/calldata"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/deposit"
)

const (
	// DefaultBlockTime is the Facet block cadence, in seconds.
	DefaultBlockTime = 12
	// GenesisBlockNumber is the first Facet block carrying an attributes transaction.
	GenesisBlockNumber = 1
	// AttributesTxIndex is the index of the attributes transaction in every Facet block.
	AttributesTxIndex = 0
)

// L2Reader is the read access to the Facet chain required to build deposits.
type L2Reader interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionInputByIndex(ctx context.Context, blockNumber uint64, index uint) ([]byte, error)
}

// Config contains all configs used to build Facet deposit transactions.
type Config struct {
	L2           L2Reader
	BlockTime    uint64
	SourceDomain uint8
	CallIndex    uint32
}

// Builder derives the L2 deposit transaction of an L1 Facet transaction.
// It holds no mutable state and is safe for concurrent use.
type Builder struct {
	l2           L2Reader
	blockTime    uint64
	sourceDomain uint8
	callIndex    uint32
}

// NewBuilder creates a new Builder instance based on the given configurations.
func NewBuilder(cfg *Config) (*Builder, error) {
	if cfg == nil || cfg.L2 == nil {
		return nil, errors.New("facet builder requires an L2 reader")
	}

	blockTime := cfg.BlockTime
	if blockTime == 0 {
		blockTime = DefaultBlockTime
	}

	return &Builder{
		l2:           cfg.L2,
		blockTime:    blockTime,
		sourceDomain: cfg.SourceDomain,
		callIndex:    cfg.CallIndex,
	}, nil
}

// Build derives the deposit transaction for the given L1 transaction.
func (b *Builder) Build(ctx context.Context, l1Tx *L1Transaction) (*deposit.DepositTx, error) {
	tx, err := ParseTransaction(l1Tx.Input)
	if err != nil {
		return nil, err
	}

	blockNumber, err := b.FacetBlockNumber(ctx, l1Tx.BlockTimestamp)
	if err != nil {
		return nil, err
	}

	header, err := b.l2.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return nil, wrapL2Error(err, blockNumber)
	}
	if header.BaseFee == nil {
		return nil, fmt.Errorf("%w: facet block %d has no base fee", ErrResolution, blockNumber)
	}

	attrs, err := b.Attributes(ctx, blockNumber)
	if err != nil {
		return nil, err
	}

	mint := calldata.Cost(l1Tx.Input)
	mint.Mul(mint, attrs.FctMintedPerGas)

	dep := &deposit.DepositTx{
		SourceHash:          deposit.DeriveSourceHash(l1Tx.BlockHash, l1Tx.Hash, b.callIndex, b.sourceDomain),
		L1TxOrigin:          l1Tx.From,
		From:                l1Tx.From,
		To:                  tx.To,
		Mint:                mint,
		Value:               tx.Value,
		GasFeeCap:           EffectiveGasFeeCap(tx.MaxFeePerGas, header.BaseFee),
		Gas:                 tx.GasLimit,
		IsSystemTransaction: false,
		Data:                tx.Data,
	}

	log.Debug(
		"Built facet deposit transaction",
		"l1TxHash", l1Tx.Hash,
		"facetBlock", blockNumber,
		"mint", dep.Mint,
		"gasFeeCap", dep.GasFeeCap,
		"sourceHash", dep.SourceHash,
	)

	return dep, nil
}

// FacetBlockNumber resolves the Facet block produced for the given L1 block timestamp.
func (b *Builder) FacetBlockNumber(ctx context.Context, l1Timestamp uint64) (uint64, error) {
	genesis, err := b.Attributes(ctx, GenesisBlockNumber)
	if err != nil {
		return 0, err
	}

	if l1Timestamp < genesis.Timestamp {
		return 0, fmt.Errorf(
			"%w: L1 timestamp %d precedes facet genesis timestamp %d",
			ErrUnresolvedL2Block,
			l1Timestamp,
			genesis.Timestamp,
		)
	}

	return (l1Timestamp-genesis.Timestamp)/b.blockTime + 1, nil
}

// Attributes fetches and decodes the attributes transaction of the given Facet block.
func (b *Builder) Attributes(ctx context.Context, blockNumber uint64) (*attributes.BlockAttributes, error) {
	input, err := b.l2.TransactionInputByIndex(ctx, blockNumber, AttributesTxIndex)
	if err != nil {
		return nil, wrapL2Error(err, blockNumber)
	}

	attrs, err := attributes.DecodeAttributes(input)
	if err != nil {
		return nil, fmt.Errorf("%w: attributes of facet block %d: %w", ErrResolution, blockNumber, err)
	}

	return attrs, nil
}

// EffectiveGasFeeCap returns the base fee when the requested cap is absent, zero or above it,
// otherwise the requested cap.
func EffectiveGasFeeCap(requested *big.Int, baseFee *big.Int) *big.Int {
	if requested == nil || requested.Sign() == 0 || requested.Cmp(baseFee) > 0 {
		return new(big.Int).Set(baseFee)
	}
	return new(big.Int).Set(requested)
}

func wrapL2Error(err error, blockNumber uint64) error {
	if errors.Is(err, ethereum.NotFound) {
		return fmt.Errorf("%w: facet block %d: %w", ErrUnresolvedL2Block, blockNumber, err)
	}
	return fmt.Errorf("%w: facet block %d: %w", ErrChainAccess, blockNumber, err)
}
