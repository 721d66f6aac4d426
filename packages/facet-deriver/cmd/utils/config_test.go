package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/cmd/flags"
)

var (
	l1Endpoint = "http://localhost:8545"
	l2Endpoint = "http://localhost:9545"
)

func TestDerivationConfigFromCli(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.MergeFlags(flags.CommonFlags, flags.QueueFlags, flags.DatabaseFlags)

	app.Action = func(c *cli.Context) error {
		cfg, err := DerivationConfigFromCli(c)
		require.Nil(t, err)
		require.Equal(t, l1Endpoint, cfg.RPC.L1Endpoint)
		require.Equal(t, l2Endpoint, cfg.RPC.L2Endpoint)
		require.Equal(t, 10*time.Second, cfg.RPC.Timeout)
		require.Equal(t, 64, cfg.RPC.L2CacheSize)
		require.Equal(t, uint64(12), cfg.BlockTime)
		require.Equal(t, uint32(3), cfg.CallIndex)

		require.Nil(t, QueueOptsFromCli(c))
		require.Nil(t, DBConfigFromCli(c))

		return nil
	}

	require.Nil(t, app.Run([]string{
		"TestDerivationConfigFromCli",
		"--" + flags.L1RPCUrl.Name, l1Endpoint,
		"--" + flags.L2RPCUrl.Name, l2Endpoint,
		"--" + flags.RPCTimeout.Name, "10s",
		"--" + flags.L2CacheSize.Name, "64",
		"--" + flags.CallIndex.Name, "3",
	}))
}

func TestDerivationConfigFromCliInvalidBlockTime(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.CommonFlags

	app.Action = func(c *cli.Context) error {
		_, err := DerivationConfigFromCli(c)
		return err
	}

	require.NotNil(t, app.Run([]string{
		"TestDerivationConfigFromCliInvalidBlockTime",
		"--" + flags.L1RPCUrl.Name, l1Endpoint,
		"--" + flags.L2RPCUrl.Name, l2Endpoint,
		"--" + flags.BlockTime.Name, "0",
	}))
}

func TestQueueAndDBConfigFromCli(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.MergeFlags(flags.QueueFlags, flags.DatabaseFlags)

	app.Action = func(c *cli.Context) error {
		opts := QueueOptsFromCli(c)
		require.NotNil(t, opts)
		require.Equal(t, "guest", opts.Username)
		require.Equal(t, "rabbit", opts.Host)
		require.Equal(t, "5672", opts.Port)
		require.Equal(t, "facet-deriver-requests", opts.QueueName)
		require.Equal(t, uint64(10), opts.PrefetchCount)

		cfg := DBConfigFromCli(c)
		require.NotNil(t, cfg)
		require.Equal(t, "mysql:3306", cfg.Host)
		require.Equal(t, "facet_deriver", cfg.Name)
		require.Equal(t, "root", cfg.User)
		require.Equal(t, uint64(50), cfg.MaxIdleConns)

		return nil
	}

	require.Nil(t, app.Run([]string{
		"TestQueueAndDBConfigFromCli",
		"--" + flags.QueueUsername.Name, "guest",
		"--" + flags.QueueHost.Name, "rabbit",
		"--" + flags.DatabaseHost.Name, "mysql:3306",
		"--" + flags.DatabaseUsername.Name, "root",
	}))
}
