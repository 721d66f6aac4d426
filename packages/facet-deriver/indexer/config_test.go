package indexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
)

var commonArgs = []string{
	"TestNewConfigFromCliContext",
	"--" + flags.L1RPCUrl.Name, "http://l1:8545",
	"--" + flags.L2RPCUrl.Name, "http://l2:8545",
}

func TestNewConfigFromCliContext(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.IndexerFlags

	app.Action = func(c *cli.Context) error {
		cfg, err := NewConfigFromCliContext(c)
		require.Nil(t, err)
		require.Equal(t, 3*time.Second, cfg.RetryInterval)
		require.Equal(t, uint64(5), cfg.MaxRetries)
		require.Equal(t, uint64(8), cfg.Workers)
		require.NotNil(t, cfg.OpenQueueFunc)
		require.NotNil(t, cfg.OpenDBFunc)
		return nil
	}

	require.Nil(t, app.Run(append(append([]string{}, commonArgs...),
		"--"+flags.QueueHost.Name, "rabbit",
		"--"+flags.DatabaseHost.Name, "mysql:3306",
		"--"+flags.BackOffRetryInterval.Name, "3s",
		"--"+flags.BackOffMaxRetries.Name, "5",
		"--"+flags.IndexerWorkers.Name, "8",
	)))
}

func TestNewConfigFromCliContextRequiresQueueAndDB(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.IndexerFlags

	app.Action = func(c *cli.Context) error {
		_, err := NewConfigFromCliContext(c)
		return err
	}

	require.NotNil(t, app.Run(append(append([]string{}, commonArgs...), "--"+flags.QueueHost.Name, "rabbit")))
	require.NotNil(t, app.Run(append(append([]string{}, commonArgs...), "--"+flags.DatabaseHost.Name, "mysql:3306")))
}
