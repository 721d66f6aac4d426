package derivation

import (
	"context"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/rpc"
)

// Config contains all configs used to build a derivation service over live chains.
type Config struct {
	RPC          *rpc.ClientConfig
	BlockTime    uint64
	SourceDomain uint8
	CallIndex    uint32
}

// NewServiceFromConfig dials both chains and creates a derivation service over them.
// The returned client must be closed by the caller.
func NewServiceFromConfig(ctx context.Context, cfg *Config) (*Service, *rpc.Client, error) {
	client, err := rpc.NewClient(ctx, cfg.RPC)
	if err != nil {
		return nil, nil, err
	}

	builder, err := facet.NewBuilder(&facet.Config{
		L2:           client.L2,
		BlockTime:    cfg.BlockTime,
		SourceDomain: cfg.SourceDomain,
		CallIndex:    cfg.CallIndex,
	})
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	svc, err := NewService(client.L1, client.L2, builder)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return svc, client, nil
}
