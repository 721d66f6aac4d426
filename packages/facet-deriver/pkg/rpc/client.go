package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
)

// ClientConfig contains all configs which will be used to initializing an
// RPC client. If not providing L2 cache size, attributes inputs are not cached.
type ClientConfig struct {
	L1Endpoint  string
	L2Endpoint  string
	Timeout     time.Duration
	L2CacheSize int
}

// Client contains all L1/L2 RPC clients that the derivation tooling needs.
type Client struct {
	L1 *EthClient
	L2 *L2Client
}

// NewClient initializes all RPC clients used by the derivation tooling.
func NewClient(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	l1RPC, err := dial(ctx, cfg.L1Endpoint, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial L1 endpoint: %w", err)
	}
	l1 := NewEthClient(l1RPC, cfg.Timeout)

	l2RPC, err := dial(ctx, cfg.L2Endpoint, cfg.Timeout)
	if err != nil {
		l1.Close()
		return nil, fmt.Errorf("failed to dial L2 endpoint: %w", err)
	}
	l2, err := NewL2Client(l2RPC, cfg.Timeout, cfg.L2CacheSize)
	if err != nil {
		l1.Close()
		l2RPC.Close()
		return nil, err
	}

	c := &Client{L1: l1, L2: l2}

	l1ChainID, err := c.L1.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to fetch L1 chain ID: %w", err)
	}
	l2ChainID, err := c.L2.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to fetch L2 chain ID: %w", err)
	}

	log.Info("Connected to chains", "l1ChainID", l1ChainID, "l2ChainID", l2ChainID)

	return c, nil
}

// Close closes the underlying connections of all clients.
func (c *Client) Close() {
	c.L1.Close()
	c.L2.Close()
}

func dial(ctx context.Context, endpoint string, timeout time.Duration) (*rpc.Client, error) {
	ctxWithTimeout, cancel := CtxWithTimeoutOrDefault(ctx, timeout)
	defer cancel()

	return rpc.DialContext(ctxWithTimeout, endpoint)
}
