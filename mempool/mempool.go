// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/lru"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

const (
	// DefaultRecentlyEvictedSize is the default number of evicted
	// transaction hashes remembered by the pool.
	DefaultRecentlyEvictedSize = 5000
)

// Config is a descriptor containing the memory pool configuration.
type Config struct {
	// ChainParams identifies which chain parameters the txpool is
	// associated with.
	ChainParams *chaincfg.Params

	// Validator evaluates the finality and contextual rules of pooled
	// transactions when the chain tip changes.
	Validator TxValidator

	// ProofRoots provides the proof roots of the chain used to recheck
	// pooled notarizations after a reorganization.  It may be nil, in
	// which case notarizations are not rechecked.
	ProofRoots ProofRootProvider

	// FeeEstimator is notified of pool and block events.  It may be nil.
	FeeEstimator FeeEstimator

	// CurrencyConverter converts reserve fees to native currency.  It is
	// only consulted on chains that are not the primary chain.
	CurrencyConverter CurrencyConverter

	// IsCurrent reports whether the chain is synced so block events are
	// representative for fee estimation.  Nil means always current.
	IsCurrent func() bool

	// SpentIndex enables the spent index.
	SpentIndex bool

	// RecentlyEvictedSize is the number of evicted transaction hashes to
	// remember.  Zero selects DefaultRecentlyEvictedSize.
	RecentlyEvictedSize uint
}

// TxDesc is a descriptor containing a transaction in the mempool along with
// additional metadata.  It is immutable once added to the pool.
type TxDesc struct {
	// Tx is the transaction associated with the entry.
	Tx *coinutil.Tx

	// Added is the time when the entry was added to the source pool.
	Added time.Time

	// Height is the block height when the entry was added to the source
	// pool.
	Height int32

	// Fee is the total fee the transaction associated with the entry pays.
	Fee int64

	// FeePerKB is the fee the transaction pays in atoms per 1000 bytes.
	FeePerKB int64

	// Size is the serialized size of the transaction.
	Size int64

	// StartingPriority is the priority of the transaction when it was added
	// to the pool.
	StartingPriority float64

	// SpendsCoinbase is set when any input spends a coinbase output.
	SpendsCoinbase bool

	// BranchID is the consensus branch id the transaction was validated
	// against.
	BranchID uint32

	// UsageSize is the dynamic memory used by the transaction.
	UsageSize int64
}

// NewTxDesc returns a descriptor for tx with the size fields computed.
func NewTxDesc(tx *coinutil.Tx, fee int64, added time.Time, priority float64,
	height int32, spendsCoinbase bool, branchID uint32) *TxDesc {

	size := int64(tx.SerializeSize())
	var feePerKB int64
	if size > 0 {
		feePerKB = fee * 1000 / size
	}
	return &TxDesc{
		Tx:               tx,
		Added:            added,
		Height:           height,
		Fee:              fee,
		FeePerKB:         feePerKB,
		Size:             size,
		StartingPriority: priority,
		SpendsCoinbase:   spendsCoinbase,
		BranchID:         branchID,
		UsageSize:        int64(dynamicMemUsage(reflect.ValueOf(tx.MsgTx()))),
	}
}

// inPoint is the pool side of a spent outpoint: the pooled transaction that
// spends it and the index of the spending input.
type inPoint struct {
	tx    *coinutil.Tx
	index uint32
}

// TxPool is used as a source of transactions that need to be mined into blocks
// and relayed to other peers.  It is safe for concurrent access from multiple
// peers.
type TxPool struct {
	// The following variables must only be used atomically.
	lastUpdated         int64  // last time pool was updated
	transactionsUpdated uint64 // number of pool changes
	notifiedSequence    uint64 // last notified recently added sequence

	mtx        sync.RWMutex
	cfg        Config
	pool       map[chainhash.Hash]*TxDesc
	outpoints  map[wire.OutPoint]inPoint
	nullifiers map[wire.ShieldedType]map[chainhash.Hash]*coinutil.Tx

	// displaced holds outpoint claims replaced by a later pooled
	// transaction spending the same outpoint.  It is only populated when
	// callers add double spends, which conflict removal resolves.
	displaced map[wire.OutPoint][]inPoint

	// Address and spent indexes with their reverse maps.
	addrIndex     map[AddressIndexKey]AddressDeltaValue
	addrInserted  map[chainhash.Hash][]AddressIndexKey
	spentIndex    map[wire.OutPoint]SpentIndexValue
	spentInserted map[chainhash.Hash][]spentEntry

	// Prioritisation and reserve overlay.
	deltas     map[chainhash.Hash]*PriorityDelta
	reserveTxs map[chainhash.Hash]*ReserveTxDescriptor

	totalTxSize      int64
	cachedInnerUsage int64

	// recentlyAdded holds transactions added since the last call to
	// NotifyRecentlyAdded.
	recentlyAdded         []*coinutil.Tx
	recentlyAddedSequence uint64
	notifyMtx             sync.Mutex

	recentlyEvicted lru.Cache

	notificationsLock sync.RWMutex
	notifications     []NotificationCallback
}

// Ensure the TxPool type implements the TxMempool interface.
var _ TxMempool = (*TxPool)(nil)

// New returns a new memory pool for storing validated transactions until
// they are mined into a block.
func New(cfg *Config) *TxPool {
	evictedSize := cfg.RecentlyEvictedSize
	if evictedSize == 0 {
		evictedSize = DefaultRecentlyEvictedSize
	}
	mp := &TxPool{
		cfg:             *cfg,
		recentlyEvicted: lru.NewCache(evictedSize),
	}
	mp.reset()
	return mp
}

// reset clears every structure of the pool.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) reset() {
	mp.pool = make(map[chainhash.Hash]*TxDesc)
	mp.outpoints = make(map[wire.OutPoint]inPoint)
	mp.displaced = make(map[wire.OutPoint][]inPoint)
	mp.nullifiers = make(map[wire.ShieldedType]map[chainhash.Hash]*coinutil.Tx)
	for _, pool := range wire.ShieldedTypes {
		mp.nullifiers[pool] = make(map[chainhash.Hash]*coinutil.Tx)
	}
	mp.addrIndex = make(map[AddressIndexKey]AddressDeltaValue)
	mp.addrInserted = make(map[chainhash.Hash][]AddressIndexKey)
	mp.spentIndex = make(map[wire.OutPoint]SpentIndexValue)
	mp.spentInserted = make(map[chainhash.Hash][]spentEntry)
	mp.deltas = make(map[chainhash.Hash]*PriorityDelta)
	mp.reserveTxs = make(map[chainhash.Hash]*ReserveTxDescriptor)
	mp.totalTxSize = 0
	mp.cachedInnerUsage = 0
	mp.recentlyAdded = nil
}

// markUpdated records a change of the pool contents.
func (mp *TxPool) markUpdated() {
	atomic.AddUint64(&mp.transactionsUpdated, 1)
	atomic.StoreInt64(&mp.lastUpdated, time.Now().Unix())
}

// isTransactionInPool returns whether or not the passed transaction already
// exists in the main pool.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) isTransactionInPool(hash *chainhash.Hash) bool {
	_, exists := mp.pool[*hash]
	return exists
}

// IsTransactionInPool returns whether or not the passed transaction already
// exists in the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) IsTransactionInPool(hash *chainhash.Hash) bool {
	// Protect concurrent access.
	mp.mtx.RLock()
	inPool := mp.isTransactionInPool(hash)
	mp.mtx.RUnlock()

	return inPool
}

// hasNoInputsOf returns whether none of the inputs of tx spend outputs of
// pooled transactions.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) hasNoInputsOf(tx *coinutil.Tx) bool {
	for _, txIn := range tx.MsgTx().TxIn {
		if mp.isTransactionInPool(&txIn.PreviousOutPoint.Hash) {
			return false
		}
	}
	return true
}

// HasNoInputsOf returns whether none of the inputs of tx spend outputs of
// pooled transactions.
//
// This function is safe for concurrent access.
func (mp *TxPool) HasNoInputsOf(tx *coinutil.Tx) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.hasNoInputsOf(tx)
}

// AddUnchecked adds an already validated transaction to the pool.  It
// performs no validation beyond rejecting a duplicate hash with ErrDuplicate.
// The view provides the outputs spent by the transaction for the address
// and spent indexes.  validFeeEstimate reports whether the fee estimator may
// use the transaction for its statistics.
//
// This function is safe for concurrent access.
func (mp *TxPool) AddUnchecked(desc *TxDesc, view blockchain.CoinView,
	validFeeEstimate bool) error {

	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	return mp.addUnchecked(desc, mp.heldView(view), validFeeEstimate)
}

// addUnchecked is the internal function which implements the public
// AddUnchecked.  See the comment for AddUnchecked for more details.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) addUnchecked(desc *TxDesc, view blockchain.CoinView,
	validFeeEstimate bool) error {

	tx := desc.Tx
	txHash := tx.Hash()
	if mp.isTransactionInPool(txHash) {
		str := fmt.Sprintf("already have transaction %v", txHash)
		return ruleError(ErrDuplicate, str)
	}

	// A transaction spending other pooled transactions is not used for
	// fee estimation since its inclusion depends on its parents.
	validFeeEstimate = validFeeEstimate && mp.hasNoInputsOf(tx)

	mp.pool[*txHash] = desc
	msgTx := tx.MsgTx()
	if !tx.IsCoinBase() {
		for i, txIn := range msgTx.TxIn {
			op := txIn.PreviousOutPoint
			if prev, ok := mp.outpoints[op]; ok {
				log.Warnf("Transaction %v double spends %v of "+
					"pooled transaction %v", txHash, op,
					prev.tx.Hash())
				mp.displaced[op] = append(mp.displaced[op], prev)
			}
			mp.outpoints[op] = inPoint{tx: tx, index: uint32(i)}
		}
	}
	for _, pool := range wire.ShieldedTypes {
		for _, nf := range msgTx.Nullifiers(pool) {
			mp.nullifiers[pool][nf] = tx
		}
	}
	mp.totalTxSize += desc.Size
	mp.cachedInnerUsage += desc.UsageSize

	mp.recentlyAdded = append(mp.recentlyAdded, tx)
	mp.recentlyAddedSequence++

	mp.addAddressIndex(desc, view)
	if mp.cfg.SpentIndex {
		mp.addSpentIndex(desc, view)
	}

	if mp.cfg.FeeEstimator != nil {
		mp.cfg.FeeEstimator.AddMemPoolTransaction(txHash, desc.Fee,
			desc.Size, desc.StartingPriority, desc.Height,
			validFeeEstimate)
	}
	mp.recentlyEvicted.Delete(*txHash)
	mp.markUpdated()

	log.Debugf("Accepted transaction %v (pool size: %v)", txHash,
		len(mp.pool))
	log.Tracef("Accepted transaction %v", sdump(msgTx))

	return nil
}

// removeEntry erases desc and every derived index entry it owns from the
// pool.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeEntry(desc *TxDesc, reason RemovalReason) {
	tx := desc.Tx
	txHash := tx.Hash()
	msgTx := tx.MsgTx()

	// Mark the referenced outpoints as unspent by the pool.  A claim
	// displaced by this transaction is restored.
	if !tx.IsCoinBase() {
		for _, txIn := range msgTx.TxIn {
			op := txIn.PreviousOutPoint
			if ip, ok := mp.outpoints[op]; ok && ip.tx == tx {
				delete(mp.outpoints, op)
				mp.restoreClaim(op)
			} else {
				mp.dropDisplaced(op, tx)
			}
		}
	}
	for _, pool := range wire.ShieldedTypes {
		for _, nf := range msgTx.Nullifiers(pool) {
			if mp.nullifiers[pool][nf] == tx {
				delete(mp.nullifiers[pool], nf)
			}
		}
	}
	mp.removeAddressIndex(txHash)
	mp.removeSpentIndex(txHash)

	mp.totalTxSize -= desc.Size
	mp.cachedInnerUsage -= desc.UsageSize
	delete(mp.pool, *txHash)
	delete(mp.deltas, *txHash)
	delete(mp.reserveTxs, *txHash)

	if mp.cfg.FeeEstimator != nil {
		mp.cfg.FeeEstimator.RemoveMemPoolTransaction(txHash)
	}
	if reason != ReasonBlock {
		mp.recentlyEvicted.Add(*txHash)
	}
	mp.markUpdated()

	log.Debugf("Removed transaction %v (%v)", txHash, reason)
}

// restoreClaim makes the most recently displaced claim of op current again.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) restoreClaim(op wire.OutPoint) {
	claims := mp.displaced[op]
	if len(claims) == 0 {
		return
	}
	mp.outpoints[op] = claims[len(claims)-1]
	if len(claims) == 1 {
		delete(mp.displaced, op)
		return
	}
	mp.displaced[op] = claims[:len(claims)-1]
}

// dropDisplaced forgets the displaced claim of op by tx.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) dropDisplaced(op wire.OutPoint, tx *coinutil.Tx) {
	claims := mp.displaced[op]
	kept := claims[:0]
	for _, ip := range claims {
		if ip.tx != tx {
			kept = append(kept, ip)
		}
	}
	if len(kept) == 0 {
		delete(mp.displaced, op)
		return
	}
	mp.displaced[op] = kept
}

// outpointSpenders returns every pooled transaction spending op, the
// current claim first.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) outpointSpenders(op wire.OutPoint) []*coinutil.Tx {
	ip, exists := mp.outpoints[op]
	if !exists {
		return nil
	}
	txs := []*coinutil.Tx{ip.tx}
	for _, displaced := range mp.displaced[op] {
		txs = append(txs, displaced.tx)
	}
	return txs
}

// spenders returns the pooled transactions spending any output of tx.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) spenders(tx *coinutil.Tx) []*chainhash.Hash {
	var hashes []*chainhash.Hash
	txHash := tx.Hash()
	for i := range tx.MsgTx().TxOut {
		prevOut := wire.OutPoint{Hash: *txHash, Index: uint32(i)}
		for _, spender := range mp.outpointSpenders(prevOut) {
			hashes = append(hashes, spender.Hash())
		}
	}
	return hashes
}

// removeTransaction is the internal function which implements the public
// RemoveTransaction.  See the comment for RemoveTransaction for more details.
// It returns the descriptors of the removed transactions in removal order.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeTransaction(tx *coinutil.Tx, removeRedeemers bool,
	reason RemovalReason) []*TxDesc {

	queue := []*chainhash.Hash{tx.Hash()}
	if removeRedeemers && !mp.isTransactionInPool(tx.Hash()) {
		// The transaction is no longer known to the pool, as happens
		// when it was mined, but its pooled children still need to
		// be removed.
		queue = append(queue, mp.spenders(tx)...)
	}

	var removed []*TxDesc
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		desc, exists := mp.pool[*hash]
		if !exists {
			continue
		}
		if removeRedeemers {
			queue = append(queue, mp.spenders(desc.Tx)...)
		}
		mp.removeEntry(desc, reason)
		removed = append(removed, desc)
	}

	return removed
}

// RemoveTransaction removes the passed transaction from the mempool. When the
// removeRedeemers flag is set, any transactions that redeem outputs from the
// removed transaction will also be removed recursively from the mempool, as
// they would otherwise become orphans.  This also applies when the passed
// transaction itself is not in the pool.  The removed descriptors are
// returned.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveTransaction(tx *coinutil.Tx, removeRedeemers bool) []*TxDesc {
	// Protect concurrent access.
	mp.mtx.Lock()
	removed := mp.removeTransaction(tx, removeRedeemers, ReasonExplicit)
	mp.mtx.Unlock()

	mp.notifyRemoved(removed, ReasonExplicit)
	return removed
}

// CheckSpend returns the pooled transaction spending the outpoint or nil
// when no pooled transaction spends it.
//
// This function is safe for concurrent access.
func (mp *TxPool) CheckSpend(op wire.OutPoint) *coinutil.Tx {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	if ip, ok := mp.outpoints[op]; ok {
		return ip.tx
	}
	return nil
}

// FetchTxDesc returns the descriptor of the requested transaction or nil
// when it is not in the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) FetchTxDesc(txHash *chainhash.Hash) *TxDesc {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.pool[*txHash]
}

// FetchTransaction returns the requested transaction from the transaction pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) FetchTransaction(txHash *chainhash.Hash) (*coinutil.Tx, error) {
	// Protect concurrent access.
	mp.mtx.RLock()
	txDesc, exists := mp.pool[*txHash]
	mp.mtx.RUnlock()

	if exists {
		return txDesc.Tx, nil
	}

	return nil, fmt.Errorf("transaction is not in the pool")
}

// TxInfo is a snapshot of a pooled transaction for external consumers.
type TxInfo struct {
	Tx       *coinutil.Tx
	Added    time.Time
	FeePerKB int64
	FeeDelta int64
}

// info returns the snapshot of desc.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) info(desc *TxDesc) *TxInfo {
	info := &TxInfo{
		Tx:       desc.Tx,
		Added:    desc.Added,
		FeePerKB: desc.FeePerKB,
	}
	if delta, ok := mp.deltas[*desc.Tx.Hash()]; ok {
		info.FeeDelta = delta.Fee
	}
	return info
}

// Info returns a snapshot of the requested transaction or nil when it is
// not in the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) Info(txHash *chainhash.Hash) *TxInfo {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	desc, exists := mp.pool[*txHash]
	if !exists {
		return nil
	}
	return mp.info(desc)
}

// InfoAll returns a snapshot of every pooled transaction ordered by the
// time they were added.
//
// This function is safe for concurrent access.
func (mp *TxPool) InfoAll() []*TxInfo {
	mp.mtx.RLock()
	infos := make([]*TxInfo, 0, len(mp.pool))
	for _, desc := range mp.pool {
		infos = append(infos, mp.info(desc))
	}
	mp.mtx.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Added.Before(infos[j].Added)
	})
	return infos
}

// Count returns the number of transactions in the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) Count() int {
	mp.mtx.RLock()
	count := len(mp.pool)
	mp.mtx.RUnlock()

	return count
}

// TotalTxSize returns the sum of the serialized sizes of the pooled
// transactions.
//
// This function is safe for concurrent access.
func (mp *TxPool) TotalTxSize() int64 {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.totalTxSize
}

// TxHashes returns a slice of hashes for all of the transactions in the memory
// pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) TxHashes() []*chainhash.Hash {
	mp.mtx.RLock()
	hashes := make([]*chainhash.Hash, len(mp.pool))
	i := 0
	for hash := range mp.pool {
		hashCopy := hash
		hashes[i] = &hashCopy
		i++
	}
	mp.mtx.RUnlock()

	return hashes
}

// TxDescs returns a slice of descriptors for all the transactions in the pool.
// The descriptors are to be treated as read only.
//
// This function is safe for concurrent access.
func (mp *TxPool) TxDescs() []*TxDesc {
	mp.mtx.RLock()
	descs := make([]*TxDesc, len(mp.pool))
	i := 0
	for _, desc := range mp.pool {
		descs[i] = desc
		i++
	}
	mp.mtx.RUnlock()

	return descs
}

// MiningDescs returns a slice of descriptors for all the transactions in the
// pool with any prioritisation applied to the fee and priority.  The
// returned descriptors are copies.
//
// This function is safe for concurrent access.
func (mp *TxPool) MiningDescs() []*TxDesc {
	mp.mtx.RLock()
	descs := make([]*TxDesc, 0, len(mp.pool))
	for hash, desc := range mp.pool {
		d := *desc
		d.StartingPriority, d.Fee = mp.applyDeltas(&hash,
			d.StartingPriority, d.Fee)
		if d.Size > 0 {
			d.FeePerKB = d.Fee * 1000 / d.Size
		}
		descs = append(descs, &d)
	}
	mp.mtx.RUnlock()

	return descs
}

// NullifierExists returns whether a pooled transaction reveals the
// nullifier in the given shielded pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) NullifierExists(nf *chainhash.Hash, pool wire.ShieldedType) (bool, error) {
	if !pool.IsValid() {
		str := fmt.Sprintf("unknown shielded pool %v", pool)
		return false, ruleError(ErrUnknownShieldedPool, str)
	}

	mp.mtx.RLock()
	_, exists := mp.nullifiers[pool][*nf]
	mp.mtx.RUnlock()

	return exists, nil
}

// EstimateFee returns the estimated fee rate per kilobyte for a transaction
// to confirm within numBlocks blocks.
//
// This function is safe for concurrent access.
func (mp *TxPool) EstimateFee(numBlocks int) (btcutil.Amount, error) {
	if mp.cfg.FeeEstimator == nil {
		return 0, fmt.Errorf("fee estimation is not enabled")
	}
	return mp.cfg.FeeEstimator.EstimateFee(numBlocks)
}

// EstimatePriority returns the estimated priority for a transaction to
// confirm within numBlocks blocks without paying a fee.
//
// This function is safe for concurrent access.
func (mp *TxPool) EstimatePriority(numBlocks int) (float64, error) {
	if mp.cfg.FeeEstimator == nil {
		return 0, fmt.Errorf("fee estimation is not enabled")
	}
	return mp.cfg.FeeEstimator.EstimatePriority(numBlocks)
}

// DynamicMemoryUsage returns an estimate of the memory used by the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) DynamicMemoryUsage() int64 {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	usage := mapUsage(len(mp.pool), hashSize+pointerSize) +
		mapUsage(len(mp.pool), txDescSize) +
		mapUsage(len(mp.outpoints), outPointSize+inPointSize) +
		mapUsage(len(mp.deltas), hashSize+pointerSize+priorityDeltaSize) +
		mapUsage(len(mp.addrIndex), addrIndexEntrySize) +
		mapUsage(len(mp.spentIndex), spentIndexEntrySize)
	for _, nfs := range mp.nullifiers {
		usage += mapUsage(len(nfs), hashSize+pointerSize)
	}
	return usage + mp.cachedInnerUsage
}

// Clear removes every transaction from the pool without notifying the fee
// estimator.
//
// This function is safe for concurrent access.
func (mp *TxPool) Clear() {
	mp.mtx.Lock()
	mp.reset()
	mp.markUpdated()
	mp.mtx.Unlock()
}

// LastUpdated returns the last time a transaction was added to or removed from
// the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) LastUpdated() time.Time {
	return time.Unix(atomic.LoadInt64(&mp.lastUpdated), 0)
}

// TransactionsUpdated returns the number of changes of the pool contents.
//
// This function is safe for concurrent access.
func (mp *TxPool) TransactionsUpdated() uint64 {
	return atomic.LoadUint64(&mp.transactionsUpdated)
}

// WasRecentlyEvicted returns whether the transaction was removed from the
// pool for a reason other than being mined.
//
// This function is safe for concurrent access.
func (mp *TxPool) WasRecentlyEvicted(txHash *chainhash.Hash) bool {
	return mp.recentlyEvicted.Contains(*txHash)
}
