package derive

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/rpc"
)

// Derive derives the deposit transactions of the given L1 transactions once,
// and writes them as a JSON array.
type Derive struct {
	ctx         context.Context
	svc         *derivation.Service
	client      *rpc.Client
	hashes      []common.Hash
	withReceipt bool
	out         io.Writer
}

func (d *Derive) InitFromCli(ctx context.Context, c *cli.Context) error {
	cfg, err := NewConfigFromCliContext(c)
	if err != nil {
		return err
	}

	return InitFromConfig(ctx, d, cfg)
}

func InitFromConfig(ctx context.Context, d *Derive, cfg *Config) error {
	svc, client, err := derivation.NewServiceFromConfig(ctx, cfg.Derivation)
	if err != nil {
		return err
	}

	d.ctx = ctx
	d.svc = svc
	d.client = client
	d.hashes = cfg.L1TxHashes
	d.withReceipt = cfg.WithReceipt
	d.out = os.Stdout

	return nil
}

func (d *Derive) Name() string {
	return "derive"
}

func (d *Derive) Start() error {
	derived, err := d.svc.DeriveMany(d.ctx, d.hashes, d.withReceipt)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")

	return enc.Encode(derived)
}

func (d *Derive) Close(ctx context.Context) {
	if d.client != nil {
		d.client.Close()
	}
}
