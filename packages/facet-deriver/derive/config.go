package derive

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/utils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/derivation"
)

type Config struct {
	Derivation  *derivation.Config
	L1TxHashes  []common.Hash
	WithReceipt bool
}

// NewConfigFromCliContext creates a new config instance from command line flags.
func NewConfigFromCliContext(c *cli.Context) (*Config, error) {
	derivationCfg, err := utils.DerivationConfigFromCli(c)
	if err != nil {
		return nil, err
	}

	var hashes []common.Hash
	for _, s := range c.StringSlice(flags.L1TxHashes.Name) {
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != common.HashLength {
			return nil, fmt.Errorf("invalid L1 transaction hash: %s", s)
		}
		hashes = append(hashes, common.BytesToHash(b))
	}

	return &Config{
		Derivation:  derivationCfg,
		L1TxHashes:  hashes,
		WithReceipt: c.Bool(flags.WithReceipt.Name),
	}, nil
}
