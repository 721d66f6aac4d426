package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

type l1Service struct {
	tx      *types.Transaction
	from    common.Address
	header  *types.Header
	pending bool
}

func (s *l1Service) ChainId() *hexutil.Big {
	return chainID(1)
}

func (s *l1Service) GetTransactionByHash(hash common.Hash) (map[string]interface{}, error) {
	if hash != s.tx.Hash() {
		return nil, nil
	}

	encoded, err := s.tx.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}

	fields["from"] = s.from
	if !s.pending {
		fields["blockHash"] = s.header.Hash()
		fields["blockNumber"] = (*hexutil.Big)(s.header.Number)
		fields["transactionIndex"] = hexutil.Uint64(3)
	}

	return fields, nil
}

func (s *l1Service) GetTransactionReceipt(hash common.Hash) (*types.Receipt, error) {
	if hash != s.tx.Hash() {
		return nil, nil
	}

	return &types.Receipt{
		Type:              s.tx.Type(),
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 90_000,
		Logs:              []*types.Log{},
		TxHash:            hash,
		GasUsed:           43_210,
		BlockHash:         s.header.Hash(),
		BlockNumber:       s.header.Number,
		TransactionIndex:  3,
	}, nil
}

func (s *l1Service) GetBlockByHash(hash common.Hash, _ bool) (*types.Header, error) {
	if hash != s.header.Hash() {
		return nil, nil
	}
	return s.header, nil
}

func newL1Service(t *testing.T) *l1Service {
	key, err := crypto.GenerateKey()
	require.Nil(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000FacE7")
	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(1)), &types.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     7,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(30_000_000_000),
		Gas:       100_000,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      []byte{0x46, 0xc0},
	})
	require.Nil(t, err)

	return &l1Service{
		tx:   tx,
		from: crypto.PubkeyToAddress(key.PublicKey),
		header: &types.Header{
			Number:     big.NewInt(21_000_000),
			Time:       1_730_000_000,
			Difficulty: big.NewInt(0),
			GasLimit:   30_000_000,
			BaseFee:    big.NewInt(12_000_000_000),
			Extra:      []byte{},
		},
	}
}

func TestL1Transaction(t *testing.T) {
	svc := newL1Service(t)
	client := NewEthClient(newInProcClient(t, svc), 10*time.Second)

	l1Tx, err := client.L1Transaction(context.Background(), svc.tx.Hash())
	require.Nil(t, err)

	require.Equal(t, svc.from, l1Tx.From)
	require.Equal(t, svc.tx.To(), l1Tx.To)
	require.Equal(t, []byte{0x46, 0xc0}, l1Tx.Input)
	require.Equal(t, svc.tx.Hash(), l1Tx.Hash)
	require.Equal(t, svc.header.Hash(), l1Tx.BlockHash)
	require.Equal(t, uint64(43_210), l1Tx.GasUsed)
	require.Equal(t, int64(12_000_000_000), l1Tx.BaseFee.Int64())
	require.Equal(t, uint64(21_000_000), l1Tx.BlockNumber)
	require.Equal(t, uint64(1_730_000_000), l1Tx.BlockTimestamp)
}

func TestL1TransactionPending(t *testing.T) {
	svc := newL1Service(t)
	svc.pending = true
	client := NewEthClient(newInProcClient(t, svc), 0)

	_, err := client.L1Transaction(context.Background(), svc.tx.Hash())
	require.ErrorIs(t, err, ErrPendingTransaction)
}

func TestL1TransactionNotFound(t *testing.T) {
	svc := newL1Service(t)
	client := NewEthClient(newInProcClient(t, svc), 0)

	_, err := client.L1Transaction(context.Background(), common.HexToHash("0x01"))
	require.NotNil(t, err)
}
