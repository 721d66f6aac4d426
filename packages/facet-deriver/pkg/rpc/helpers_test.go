package rpc

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// newInProcClient serves the given "eth" namespace implementation in-process.
func newInProcClient(t *testing.T, service interface{}) *rpc.Client {
	server := rpc.NewServer()
	require.Nil(t, server.RegisterName("eth", service))

	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})

	return client
}

func chainID(id int64) *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(id))
}
