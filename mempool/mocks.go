package mempool

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/mock"
)

// MockTxMempool is a mock implementation of the TxMempool interface.
type MockTxMempool struct {
	mock.Mock
}

// Ensure the MockTxMempool implements the TxMemPool interface.
var _ TxMempool = (*MockTxMempool)(nil)

// LastUpdated returns the last time a transaction was added to or removed from
// the source pool.
func (m *MockTxMempool) LastUpdated() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// TxDescs returns a slice of descriptors for all the transactions in the pool.
func (m *MockTxMempool) TxDescs() []*TxDesc {
	args := m.Called()
	return args.Get(0).([]*TxDesc)
}

// Deltas returns every prioritisation currently recorded.
func (m *MockTxMempool) Deltas() map[chainhash.Hash]PriorityDelta {
	args := m.Called()
	return args.Get(0).(map[chainhash.Hash]PriorityDelta)
}

// Count returns the number of transactions in the main pool.
func (m *MockTxMempool) Count() int {
	args := m.Called()
	return args.Get(0).(int)
}

// FetchTransaction returns the requested transaction from the transaction
// pool.
func (m *MockTxMempool) FetchTransaction(
	txHash *chainhash.Hash) (*coinutil.Tx, error) {

	args := m.Called(txHash)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*coinutil.Tx), args.Error(1)
}

// IsTransactionInPool returns whether or not the passed transaction already
// exists in the main pool.
func (m *MockTxMempool) IsTransactionInPool(hash *chainhash.Hash) bool {
	args := m.Called(hash)
	return args.Bool(0)
}

// RemoveTransaction removes the passed transaction from the mempool.
func (m *MockTxMempool) RemoveTransaction(tx *coinutil.Tx,
	removeRedeemers bool) []*TxDesc {

	args := m.Called(tx, removeRedeemers)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*TxDesc)
}

// PrioritiseTransaction adds to the prioritisation of a transaction.
func (m *MockTxMempool) PrioritiseTransaction(txHash *chainhash.Hash,
	priorityDelta float64, feeDelta int64) {

	m.Called(txHash, priorityDelta, feeDelta)
}

// MiningDescs returns the pooled transactions with prioritisation applied.
func (m *MockTxMempool) MiningDescs() []*TxDesc {
	args := m.Called()
	return args.Get(0).([]*TxDesc)
}

// NullifierExists returns whether a pooled transaction reveals the
// nullifier.
func (m *MockTxMempool) NullifierExists(nf *chainhash.Hash,
	pool wire.ShieldedType) (bool, error) {

	args := m.Called(nf, pool)
	return args.Bool(0), args.Error(1)
}
