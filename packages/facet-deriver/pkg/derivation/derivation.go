package derivation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/deposit"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/metrics"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

const defaultConcurrency = 8

var ErrUnknownL1Transaction = fmt.Errorf("%w: unknown L1 transaction", facet.ErrResolution)

// L1Source fetches observed L1 transactions.
type L1Source interface {
	L1Transaction(ctx context.Context, hash common.Hash) (*facet.L1Transaction, error)
}

// ReceiptSource fetches receipts of Facet transactions.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*gethtypes.Receipt, error)
}

// Service derives deposit transactions of L1 Facet transactions by hash.
type Service struct {
	l1          L1Source
	receipts    ReceiptSource
	builder     *facet.Builder
	concurrency int
}

// NewService creates a new derivation service, receipts may be nil when
// created contract lookups are never requested.
func NewService(l1 L1Source, receipts ReceiptSource, builder *facet.Builder) (*Service, error) {
	if l1 == nil || builder == nil {
		return nil, errors.New("derivation service requires an L1 source and a builder")
	}

	return &Service{
		l1:          l1,
		receipts:    receipts,
		builder:     builder,
		concurrency: defaultConcurrency,
	}, nil
}

// Derive derives the deposit transaction of the given L1 transaction. When withReceipt is set,
// the address of the contract created by the deposit is looked up on the Facet chain.
func (s *Service) Derive(ctx context.Context, l1TxHash common.Hash, withReceipt bool) (*types.DerivedDeposit, error) {
	start := time.Now()

	derived, err := s.derive(ctx, l1TxHash, withReceipt)
	if err != nil {
		metrics.DerivationErrorsTotal.WithLabelValues(ErrorCategory(err)).Inc()
		return nil, err
	}

	metrics.DerivationsTotal.Inc()
	metrics.DerivationDuration.Observe(time.Since(start).Seconds())

	return derived, nil
}

func (s *Service) derive(ctx context.Context, l1TxHash common.Hash, withReceipt bool) (*types.DerivedDeposit, error) {
	l1Tx, err := s.l1.L1Transaction(ctx, l1TxHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownL1Transaction, l1TxHash)
		}
		return nil, fmt.Errorf("%w: %w", facet.ErrChainAccess, err)
	}

	dep, err := s.builder.Build(ctx, l1Tx)
	if err != nil {
		return nil, err
	}

	facetBlock, err := s.builder.FacetBlockNumber(ctx, l1Tx.BlockTimestamp)
	if err != nil {
		return nil, err
	}

	derived, err := NewDerivedDeposit(l1Tx, dep, facetBlock)
	if err != nil {
		return nil, err
	}

	if withReceipt {
		if err := s.lookupContractAddress(ctx, derived); err != nil {
			return nil, err
		}
	}

	log.Info(
		"Derived facet deposit",
		"l1TxHash", derived.L1TxHash,
		"l2TxHash", derived.L2TxHash,
		"facetBlock", derived.FacetBlockNumber,
	)

	return derived, nil
}

// DeriveMany derives the given L1 transactions concurrently, results keep the order of the hashes.
func (s *Service) DeriveMany(
	ctx context.Context,
	l1TxHashes []common.Hash,
	withReceipt bool,
) ([]*types.DerivedDeposit, error) {
	results := make([]*types.DerivedDeposit, len(l1TxHashes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, hash := range l1TxHashes {
		g.Go(func() error {
			derived, err := s.Derive(gCtx, hash, withReceipt)
			if err != nil {
				return fmt.Errorf("failed to derive %s: %w", hash, err)
			}
			results[i] = derived
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// lookupContractAddress sets the address of the contract created by a contract creation deposit,
// a deposit not yet included on the Facet chain is left without one.
func (s *Service) lookupContractAddress(ctx context.Context, derived *types.DerivedDeposit) error {
	if derived.To != nil {
		return nil
	}
	if s.receipts == nil {
		return errors.New("no receipt source configured")
	}

	receipt, err := s.receipts.TransactionReceipt(ctx, derived.L2TxHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			log.Info("Deposit not yet included on the facet chain", "l2TxHash", derived.L2TxHash)
			return nil
		}
		return fmt.Errorf("%w: receipt of %s: %w", facet.ErrChainAccess, derived.L2TxHash, err)
	}

	if receipt.ContractAddress != (common.Address{}) {
		address := receipt.ContractAddress
		derived.ContractAddress = &address
	}

	return nil
}

// NewDerivedDeposit assembles the derivation record of the given deposit transaction.
func NewDerivedDeposit(l1Tx *facet.L1Transaction, dep *deposit.DepositTx, facetBlock uint64) (*types.DerivedDeposit, error) {
	raw, err := dep.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return &types.DerivedDeposit{
		L1TxHash:         l1Tx.Hash,
		L1BlockHash:      l1Tx.BlockHash,
		L1BlockNumber:    l1Tx.BlockNumber,
		FacetBlockNumber: facetBlock,
		SourceHash:       dep.SourceHash,
		L2TxHash:         dep.Hash(),
		RawTransaction:   raw,
		From:             dep.From,
		To:               dep.To,
		Mint:             toHexBig(dep.Mint),
		Value:            toHexBig(dep.Value),
		GasFeeCap:        toHexBig(dep.GasFeeCap),
		Gas:              hexutil.Uint64(dep.Gas),
		Data:             dep.Data,
	}, nil
}

// ErrorCategory returns the metrics label of a derivation error.
func ErrorCategory(err error) string {
	switch {
	case errors.Is(err, facet.ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, facet.ErrChainAccess):
		return "chain_access"
	case errors.Is(err, facet.ErrResolution):
		return "resolution"
	default:
		return "unknown"
	}
}
