package derivation

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/attributes"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/deposit"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/testutils"
)

const genesisTimestamp = uint64(1_717_000_000)

var (
	sender   = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	contract = common.HexToAddress("0x00000000000000000000000000000000000c0de0")
)

func newTestService(t *testing.T) (*Service, *testutils.StubL1, *testutils.StubL2) {
	l2 := testutils.NewStubL2(genesisTimestamp)
	l2.AddBlock(3, big.NewInt(100), &attributes.BlockAttributes{
		Timestamp:       genesisTimestamp + 24,
		Number:          3,
		FctMintedPerGas: big.NewInt(10),
	})

	builder, err := facet.NewBuilder(&facet.Config{L2: l2})
	require.Nil(t, err)

	l1 := testutils.NewStubL1()
	svc, err := NewService(l1, l2, builder)
	require.Nil(t, err)

	return svc, l1, l2
}

func l1Tx(hash common.Hash, input []byte) *facet.L1Transaction {
	return &facet.L1Transaction{
		From:           sender,
		Input:          input,
		Hash:           hash,
		BlockHash:      common.HexToHash("0xb10c"),
		BlockNumber:    20_000_000,
		BlockTimestamp: genesisTimestamp + 30,
	}
}

func TestDerive(t *testing.T) {
	svc, l1, _ := newTestService(t)

	hash := common.HexToHash("0x01")
	to := common.HexToAddress("0x0000000000000000000000000000000000000def")
	l1.Add(l1Tx(hash, testutils.FacetTxInput(big.NewInt(1), to.Bytes(), big.NewInt(5), []byte{}, uint64(50_000), []byte{0xaa})))

	derived, err := svc.Derive(context.Background(), hash, false)
	require.Nil(t, err)

	require.Equal(t, hash, derived.L1TxHash)
	require.Equal(t, uint64(3), derived.FacetBlockNumber)
	require.Equal(t, &to, derived.To)
	require.Equal(t, int64(100), derived.GasFeeCap.ToInt().Int64())
	require.Equal(t, int64(5), derived.Value.ToInt().Int64())
	require.Nil(t, derived.ContractAddress)

	var dep deposit.DepositTx
	require.Nil(t, dep.UnmarshalBinary(derived.RawTransaction))
	require.Equal(t, derived.L2TxHash, dep.Hash())
	require.Equal(t, derived.SourceHash, dep.SourceHash)
}

func TestDeriveContractCreation(t *testing.T) {
	svc, l1, l2 := newTestService(t)

	hash := common.HexToHash("0x02")
	l1.Add(l1Tx(hash, testutils.FacetTxInput(big.NewInt(1), []byte{}, []byte{}, []byte{}, uint64(1_000_000), []byte{0x60, 0x00})))

	derived, err := svc.Derive(context.Background(), hash, true)
	require.Nil(t, err)
	require.Nil(t, derived.To)
	require.Nil(t, derived.ContractAddress)

	l2.AddReceipt(derived.L2TxHash, &gethtypes.Receipt{ContractAddress: contract})

	derived, err = svc.Derive(context.Background(), hash, true)
	require.Nil(t, err)
	require.Equal(t, &contract, derived.ContractAddress)
}

func TestDeriveErrors(t *testing.T) {
	svc, l1, _ := newTestService(t)

	_, err := svc.Derive(context.Background(), common.HexToHash("0xdead"), false)
	require.ErrorIs(t, err, ErrUnknownL1Transaction)
	require.Equal(t, "resolution", ErrorCategory(err))

	malformed := common.HexToHash("0x03")
	l1.Add(l1Tx(malformed, []byte{0x02, 0xc0}))
	_, err = svc.Derive(context.Background(), malformed, false)
	require.ErrorIs(t, err, facet.ErrInvalidTypeMarker)
	require.Equal(t, "malformed_input", ErrorCategory(err))

	l1.Err = errors.New("dial tcp: connection refused")
	_, err = svc.Derive(context.Background(), malformed, false)
	require.ErrorIs(t, err, facet.ErrChainAccess)
	require.Equal(t, "chain_access", ErrorCategory(err))
}

func TestDeriveMany(t *testing.T) {
	svc, l1, _ := newTestService(t)

	var hashes []common.Hash
	for i := 1; i <= 20; i++ {
		hash := common.BigToHash(big.NewInt(int64(i)))
		hashes = append(hashes, hash)
		l1.Add(l1Tx(hash, testutils.FacetTxInput(big.NewInt(1), []byte{}, big.NewInt(int64(i)))))
	}

	derived, err := svc.DeriveMany(context.Background(), hashes, false)
	require.Nil(t, err)
	require.Len(t, derived, len(hashes))
	for i, d := range derived {
		require.Equal(t, hashes[i], d.L1TxHash)
		require.Equal(t, int64(i+1), d.Value.ToInt().Int64())
	}

	_, err = svc.DeriveMany(context.Background(), append(hashes, common.HexToHash("0xdead")), false)
	require.ErrorIs(t, err, ErrUnknownL1Transaction)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	require.NotNil(t, err)
}
