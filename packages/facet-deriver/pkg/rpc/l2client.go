package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	lru "github.com/hashicorp/golang-lru/v2"
)

// txInputKey identifies a transaction by its position in the chain.
type txInputKey struct {
	blockNumber uint64
	index       uint
}

// rawTransaction is the part of a Facet L2 transaction object the derivation reads.
// Deposit transactions can not be decoded by the stock go-ethereum transaction types.
type rawTransaction struct {
	Hash  common.Hash   `json:"hash"`
	Input hexutil.Bytes `json:"input"`
}

// L2Client is the Facet chain RPC client, it implements facet.L2Reader.
type L2Client struct {
	eth     *ethclient.Client
	rpc     *rpc.Client
	timeout time.Duration
	inputs  *lru.Cache[txInputKey, []byte]
}

// NewL2Client creates a new L2Client instance, cacheSize 0 disables the input cache.
func NewL2Client(client *rpc.Client, timeout time.Duration, cacheSize int) (*L2Client, error) {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	c := &L2Client{
		eth:     ethclient.NewClient(client),
		rpc:     client,
		timeout: timeout,
	}

	if cacheSize > 0 {
		inputs, err := lru.New[txInputKey, []byte](cacheSize)
		if err != nil {
			return nil, err
		}
		c.inputs = inputs
	}

	return c, nil
}

// ChainID retrieves the Facet chain ID.
func (c *L2Client) ChainID(ctx context.Context) (*big.Int, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	return c.eth.ChainID(ctxWithTimeout)
}

// HeaderByNumber returns the Facet block header with the given number.
func (c *L2Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	return c.eth.HeaderByNumber(ctxWithTimeout, number)
}

// TransactionInputByIndex returns the input of the transaction at the given position.
func (c *L2Client) TransactionInputByIndex(ctx context.Context, blockNumber uint64, index uint) ([]byte, error) {
	key := txInputKey{blockNumber: blockNumber, index: index}
	if c.inputs != nil {
		if input, ok := c.inputs.Get(key); ok {
			return input, nil
		}
	}

	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	var tx *rawTransaction
	if err := c.rpc.CallContext(
		ctxWithTimeout,
		&tx,
		"eth_getTransactionByBlockNumberAndIndex",
		hexutil.EncodeUint64(blockNumber),
		hexutil.Uint(index),
	); err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ethereum.NotFound
	}

	if c.inputs != nil {
		c.inputs.Add(key, tx.Input)
	}

	log.Trace("Fetched L2 transaction input", "blockNumber", blockNumber, "index", index, "hash", tx.Hash)

	return tx.Input, nil
}

// TransactionReceipt returns the receipt of a Facet transaction.
func (c *L2Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, c.timeout)
	defer cancel()

	return c.eth.TransactionReceipt(ctxWithTimeout, hash)
}

// Close closes the underlying RPC connection.
func (c *L2Client) Close() {
	c.rpc.Close()
}
