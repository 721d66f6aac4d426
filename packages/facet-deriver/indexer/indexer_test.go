package indexer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/facet"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/testutils"
	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

type fakeDeriver struct {
	mu    sync.Mutex
	calls map[common.Hash]int
	// failures maps a hash to the errors returned by its first derivations.
	failures map[common.Hash][]error
}

func (d *fakeDeriver) Derive(_ context.Context, hash common.Hash, _ bool) (*types.DerivedDeposit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls[hash]++
	if errs := d.failures[hash]; len(errs) > 0 {
		d.failures[hash] = errs[1:]
		return nil, errs[0]
	}

	return &types.DerivedDeposit{L1TxHash: hash, L2TxHash: common.BytesToHash(hash[:16])}, nil
}

func (d *fakeDeriver) Calls(hash common.Hash) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[hash]
}

type memSaver struct {
	mu    sync.Mutex
	saved map[common.Hash]*types.DerivedDeposit
}

func (s *memSaver) Save(_ context.Context, derived *types.DerivedDeposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[derived.L1TxHash] = derived
	return nil
}

func (s *memSaver) Has(hash common.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[hash]
	return ok
}

type IndexerTestSuite struct {
	suite.Suite
	indexer *Indexer
	deriver *fakeDeriver
	saver   *memSaver
	queue   *testutils.MemQueue
}

func (s *IndexerTestSuite) SetupTest() {
	s.deriver = &fakeDeriver{calls: make(map[common.Hash]int), failures: make(map[common.Hash][]error)}
	s.saver = &memSaver{saved: make(map[common.Hash]*types.DerivedDeposit)}
	s.queue = testutils.NewMemQueue()

	s.indexer = new(Indexer)
	s.indexer.init(context.Background(), s.deriver, s.saver, s.queue, &Config{
		RetryInterval: time.Millisecond,
		MaxRetries:    3,
		Workers:       2,
	})
	s.Nil(s.indexer.Start())
}

func (s *IndexerTestSuite) TearDownTest() {
	s.indexer.Close(context.Background())
}

func (s *IndexerTestSuite) publish(hash common.Hash) {
	s.Nil(s.queue.Publish(context.Background(), types.DeriveRequest{L1TxHash: hash}))
}

func (s *IndexerTestSuite) TestIndex() {
	hashes := []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02"), common.HexToHash("0x03")}
	for _, hash := range hashes {
		s.publish(hash)
	}

	s.Eventually(func() bool {
		for _, hash := range hashes {
			if !s.saver.Has(hash) {
				return false
			}
		}
		return true
	}, 5*time.Second, 10*time.Millisecond)
}

func (s *IndexerTestSuite) TestRetryChainAccessFailure() {
	hash := common.HexToHash("0x0a")
	s.deriver.failures[hash] = []error{
		fmt.Errorf("%w: connection reset", facet.ErrChainAccess),
		fmt.Errorf("%w: connection reset", facet.ErrChainAccess),
	}
	s.publish(hash)

	s.Eventually(func() bool { return s.saver.Has(hash) }, 5*time.Second, 10*time.Millisecond)
	s.Equal(3, s.deriver.Calls(hash))
}

func (s *IndexerTestSuite) TestNoRetryMalformedInput() {
	malformed := common.HexToHash("0x0b")
	s.deriver.failures[malformed] = []error{facet.ErrInvalidTypeMarker}
	s.publish(malformed)

	valid := common.HexToHash("0x0c")
	s.publish(valid)

	s.Eventually(func() bool { return s.saver.Has(valid) }, 5*time.Second, 10*time.Millisecond)
	s.Eventually(func() bool { return s.deriver.Calls(malformed) == 1 }, 5*time.Second, 10*time.Millisecond)
	s.False(s.saver.Has(malformed))
}

func TestIndexerTestSuite(t *testing.T) {
	suite.Run(t, new(IndexerTestSuite))
}
