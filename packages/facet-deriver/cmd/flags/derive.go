package flags

import (
	"github.com/urfave/cli/v2"
)

var (
	L1TxHashes = &cli.StringSliceFlag{
		Name:     "l1.txHash",
		Usage:    "Hash of an L1 Facet transaction to derive, may be repeated",
		Required: true,
		Category: deriveCategory,
		EnvVars:  []string{"L1_TX_HASHES"},
	}
	WithReceipt = &cli.BoolFlag{
		Name:     "l2.receipt",
		Usage:    "Look up the contract created by each derived deposit on the Facet chain",
		Value:    false,
		Category: deriveCategory,
		EnvVars:  []string{"L2_RECEIPT"},
	}
)

var DeriveFlags = MergeFlags(CommonFlags, []cli.Flag{
	L1TxHashes,
	WithReceipt,
})
