package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/api"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/utils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/derive"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/indexer"
)

func main() {
	app := cli.NewApp()

	log.SetOutput(os.Stdout)
	// attempt to load a .env file to overwrite CLI flags, but allow it to not
	// exist.

	envFile := os.Getenv("FACET_DERIVER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	_ = godotenv.Load(envFile)

	app.Name = "Facet Deriver"
	app.Usage = "The facet deposit derivation software command line interface"
	app.Copyright = ""
	app.Description = "Off-chain derivation of Facet L2 deposit transactions from L1 transactions"
	app.Authors = []*cli.Author{{Name: "", Email: ""}}
	app.EnableBashCompletion = true

	// All supported sub commands.
	app.Commands = []*cli.Command{
		{
			Name:        "derive",
			Flags:       flags.DeriveFlags,
			Usage:       "Derives the deposit transactions of the given L1 transactions",
			Description: "Prints the derived Facet deposit transactions as JSON",
			Action:      utils.OneShotAction(new(derive.Derive)),
		},
		{
			Name:        "api",
			Flags:       flags.APIFlags,
			Usage:       "Starts the facet deriver http API software",
			Description: "Facet deriver http API software",
			Action:      utils.SubcommandAction(new(api.API)),
		},
		{
			Name:        "indexer",
			Flags:       flags.IndexerFlags,
			Usage:       "Starts the facet deriver indexer software",
			Description: "Derives and persists the deposits of queued derivation requests",
			Action:      utils.SubcommandAction(new(indexer.Indexer)),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
