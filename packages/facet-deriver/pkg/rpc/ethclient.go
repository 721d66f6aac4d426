package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
)

var ErrPendingTransaction = errors.New("transaction is pending")

// EthClient is a wrapper for go-ethereum eth client with a timeout attached,
// serving the L1 side of the derivation.
type EthClient struct {
	*ethclient.Client
	timeout time.Duration
}

// NewEthClient creates a new EthClient instance over the given RPC connection.
func NewEthClient(client *rpc.Client, timeout time.Duration) *EthClient {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &EthClient{Client: ethclient.NewClient(client), timeout: timeout}
}

// ChainID retrieves the current chain ID for transaction replay protection.
func (c *EthClient) ChainID(ctx context.Context) (*big.Int, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	return c.Client.ChainID(ctxWithTimeout)
}

// L1Transaction fetches the given mined transaction together with its receipt and
// containing block header.
func (c *EthClient) L1Transaction(ctx context.Context, hash common.Hash) (*facet.L1Transaction, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	tx, pending, err := c.TransactionByHash(ctxWithTimeout, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", hash, err)
	}
	if pending {
		return nil, fmt.Errorf("%w: %s", ErrPendingTransaction, hash)
	}

	receipt, err := c.TransactionReceipt(ctxWithTimeout, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt of %s: %w", hash, err)
	}

	header, err := c.HeaderByHash(ctxWithTimeout, receipt.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block %s: %w", receipt.BlockHash, err)
	}

	from, err := c.TransactionSender(ctxWithTimeout, tx, receipt.BlockHash, receipt.TransactionIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sender of %s: %w", hash, err)
	}

	return &facet.L1Transaction{
		From:           from,
		To:             tx.To(),
		Input:          tx.Data(),
		Hash:           tx.Hash(),
		BlockHash:      receipt.BlockHash,
		GasUsed:        receipt.GasUsed,
		BaseFee:        header.BaseFee,
		BlockNumber:    header.Number.Uint64(),
		BlockTimestamp: header.Time,
	}, nil
}
