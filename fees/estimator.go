// Copyright (c) 2018-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fees

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	ldbutil "github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// DefaultMinBucketFee is the default fee rate, in zatoshis per
	// kilobyte, of the lowest fee bucket.
	DefaultMinBucketFee btcutil.Amount = 1000

	// DefaultMaxBucketFeeMultiplier is the default multiplier used to find the
	// largest fee bucket, starting at the minimum fee.
	DefaultMaxBucketFeeMultiplier int = 100

	// DefaultMaxConfirmations is the default number of confirmation ranges to
	// track in the estimator.
	DefaultMaxConfirmations uint32 = 25

	// DefaultFeeRateStep is the default multiplier between two consecutive fee
	// rate buckets.
	DefaultFeeRateStep float64 = 1.1

	// DefaultMinBucketPriority is the default priority of the lowest
	// priority bucket.
	DefaultMinBucketPriority float64 = 10

	// DefaultMaxBucketPriority is the default priority of the highest
	// priority bucket.
	DefaultMaxBucketPriority float64 = 1e16

	// DefaultPriorityStep is the default multiplier between two consecutive
	// priority buckets.
	DefaultPriorityStep float64 = 2

	// defaultDecay is the default value used to decay old transactions from the
	// estimator.
	defaultDecay float64 = 0.998

	// defaultSuccessPct is the share of transactions of the selected
	// buckets that must have confirmed within the target.
	defaultSuccessPct = 0.95

	// maxAllowedBuckets is an upper bound of how many buckets of a kind can
	// be used in the estimator. This is verified during estimator
	// initialization and database loading.
	maxAllowedBuckets = 2000

	// maxAllowedConfirms is an upper bound of how many confirmation ranges can
	// be used in the estimator. This is verified during estimator
	// initialization and database loading.
	maxAllowedConfirms = 788
)

var (
	// ErrNoSuccessPctBucketFound is the error returned when no bucket has been
	// found with the minimum required percentage success.
	ErrNoSuccessPctBucketFound = errors.New("no bucket with the minimum " +
		"required success percentage found")

	// ErrNotEnoughTxsForEstimate is the error returned when not enough
	// transactions have been seen by the fee generator to give an estimate.
	ErrNotEnoughTxsForEstimate = errors.New("not enough transactions seen for " +
		"estimation")

	dbByteOrder = binary.BigEndian

	dbKeyVersion          = []byte("version")
	dbKeyBucketFees       = []byte("bucketFeeBounds")
	dbKeyBucketPriorities = []byte("bucketPriorityBounds")
	dbKeyMaxConfirms      = []byte("maxConfirms")
	dbKeyBestHeight       = []byte("bestHeight")
	dbKeyFeeBucketPrefix  = []byte{0x01, 0x70, 0x1d, 0x00}
	dbKeyPriBucketPrefix  = []byte{0x01, 0x70, 0x1d, 0x01}
)

// ErrTargetConfTooLarge is the type of error returned when an user of the
// estimator requested a confirmation range higher than tracked by the estimator.
type ErrTargetConfTooLarge struct {
	MaxConfirms int32
	ReqConfirms int32
}

func (e ErrTargetConfTooLarge) Error() string {
	return fmt.Sprintf("target confirmation requested (%d) higher than "+
		"maximum confirmation range tracked by estimator (%d)", e.ReqConfirms,
		e.MaxConfirms)
}

// EstimatorConfig stores the configuration parameters for a given fee
// estimator. It is used to initialize an empty fee estimator.
type EstimatorConfig struct {
	// MaxConfirms is the maximum number of confirmation ranges to check.
	MaxConfirms uint32

	// MinBucketFee is the value of the fee rate of the lowest bucket for which
	// estimation is tracked.
	MinBucketFee btcutil.Amount

	// MaxBucketFee is the value of the fee for the highest bucket for which
	// estimation is tracked.
	//
	// It MUST be higher than MinBucketFee.
	MaxBucketFee btcutil.Amount

	// ExtraBucketFee is an additional bucket fee rate to include in the
	// database for tracking transactions. Specifying this can be useful when
	// the default relay fee of the network is undergoing change, so that the
	// older fee can be tracked exactly.
	//
	// It MUST have a value between MinBucketFee and MaxBucketFee, otherwise
	// it's ignored.
	ExtraBucketFee btcutil.Amount

	// FeeRateStep is the multiplier to generate the fee rate buckets (each
	// bucket is higher than the previous one by this factor).
	//
	// It MUST have a value > 1.0.
	FeeRateStep float64

	// MinBucketPriority and MaxBucketPriority bound the priority buckets.
	// Transactions paying less than MinBucketFee are tracked by priority
	// when their priority is at least MinBucketPriority.
	MinBucketPriority float64
	MaxBucketPriority float64

	// PriorityStep is the multiplier to generate the priority buckets.
	//
	// It MUST have a value > 1.0.
	PriorityStep float64

	// DatabaseFile is the location of the estimator database file. If empty,
	// updates to the estimator state are not backed by the filesystem.
	DatabaseFile string

	// ReplaceBucketsOnLoad indicates whether to replace the buckets in the
	// current estimator by those stored in the feesdb file instead of
	// validating that they are both using the same set of bounds.
	ReplaceBucketsOnLoad bool
}

// DefaultEstimatorConfig returns the default estimator configuration without
// a database file.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		MaxConfirms:       DefaultMaxConfirmations,
		MinBucketFee:      DefaultMinBucketFee,
		MaxBucketFee:      DefaultMinBucketFee * btcutil.Amount(DefaultMaxBucketFeeMultiplier),
		FeeRateStep:       DefaultFeeRateStep,
		MinBucketPriority: DefaultMinBucketPriority,
		MaxBucketPriority: DefaultMaxBucketPriority,
		PriorityStep:      DefaultPriorityStep,
	}
}

// statKind selects the statistics a mempool transaction is tracked by.
type statKind uint8

const (
	untracked statKind = iota
	trackedByFee
	trackedByPriority
)

// memPoolTxDesc is an aux structure used to track the local estimator mempool.
type memPoolTxDesc struct {
	addedHeight int64
	kind        statKind
	val         float64
}

// Estimator tracks historical data for published and mined transactions in
// order to estimate the fee rate or the priority new transactions need for
// confirmation within a target block window.
type Estimator struct {
	feeStats *confirmStats
	priStats *confirmStats

	// memPoolTxs is the map of transaction hashes and data of known mempool txs.
	memPoolTxs map[chainhash.Hash]memPoolTxDesc

	bestHeight int64
	db         *leveldb.DB
	lock       sync.RWMutex
}

// NewEstimator returns an empty estimator given a config. This estimator
// then needs to be fed data for published and mined transactions before it can
// be used to estimate fees for new transactions.
func NewEstimator(cfg *EstimatorConfig) (*Estimator, error) {
	// Sanity check the config.
	if cfg.MaxBucketFee <= cfg.MinBucketFee {
		return nil, errors.New("maximum bucket fee should not be lower than " +
			"minimum bucket fee")
	}
	if cfg.FeeRateStep <= 1.0 {
		return nil, errors.New("fee rate step should not be <= 1.0")
	}
	if cfg.MinBucketFee <= 0 {
		return nil, errors.New("minimum bucket fee rate cannot be <= 0")
	}
	if cfg.MaxBucketPriority <= cfg.MinBucketPriority {
		return nil, errors.New("maximum bucket priority should not be " +
			"lower than minimum bucket priority")
	}
	if cfg.MinBucketPriority <= 0 {
		return nil, errors.New("minimum bucket priority cannot be <= 0")
	}
	if cfg.PriorityStep <= 1.0 {
		return nil, errors.New("priority step should not be <= 1.0")
	}
	if cfg.MaxConfirms < 2 {
		return nil, errors.New("at least two confirmation ranges are " +
			"required")
	}
	if cfg.MaxConfirms > maxAllowedConfirms {
		return nil, fmt.Errorf("confirmation count requested (%d) larger than "+
			"maximum allowed (%d)", cfg.MaxConfirms, maxAllowedConfirms)
	}

	feeBounds := makeBucketBounds(float64(cfg.MinBucketFee),
		float64(cfg.MaxBucketFee), cfg.FeeRateStep,
		float64(cfg.ExtraBucketFee))
	priBounds := makeBucketBounds(cfg.MinBucketPriority,
		cfg.MaxBucketPriority, cfg.PriorityStep, 0)
	if len(feeBounds) > maxAllowedBuckets || len(priBounds) > maxAllowedBuckets {
		return nil, fmt.Errorf("bucket count larger than maximum allowed "+
			"(%d)", maxAllowedBuckets)
	}

	maxConfirms := int32(cfg.MaxConfirms)
	res := &Estimator{
		feeStats:   newConfirmStats(feeBounds, maxConfirms, defaultDecay),
		priStats:   newConfirmStats(priBounds, maxConfirms, defaultDecay),
		memPoolTxs: make(map[chainhash.Hash]memPoolTxDesc),
		bestHeight: -1,
	}

	if cfg.DatabaseFile != "" {
		db, err := leveldb.OpenFile(cfg.DatabaseFile, nil)
		if err != nil {
			return nil, fmt.Errorf("error opening estimator database: %w", err)
		}
		res.db = db

		err = res.loadFromDatabase(cfg.ReplaceBucketsOnLoad)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("error loading estimator data from db: %w",
				err)
		}
	}

	return res, nil
}

// DumpBuckets returns the internal estimator state as a string.
func (est *Estimator) DumpBuckets() string {
	est.lock.RLock()
	defer est.lock.RUnlock()

	var w strings.Builder
	fmt.Fprintf(&w, "Fee rate buckets (best height %d)\n", est.bestHeight)
	est.feeStats.dump(&w, 1e8)
	w.WriteString("\nPriority buckets\n")
	est.priStats.dump(&w, 1)
	return w.String()
}

// statsDBKeys are the database keys of one kind of statistics.
type statsDBKeys struct {
	bounds []byte
	prefix []byte
}

var (
	feeDBKeys = statsDBKeys{bounds: dbKeyBucketFees, prefix: dbKeyFeeBucketPrefix}
	priDBKeys = statsDBKeys{bounds: dbKeyBucketPriorities, prefix: dbKeyPriBucketPrefix}
)

// loadFromDatabase loads the estimator data from the currently opened database.
// After loading, it updates the db with the current estimator configuration.
//
// Argument replaceBuckets indicates if the buckets in the current stats should
// be completely replaced by what is stored in the database or if the data
// should be validated against what is current in the estimator.
//
// The database should *not* be used while loading is taking place.
//
// Loading from a database created with a different set of bucket bounds or
// confirmation ranges than the current configuration fails unless
// replaceBuckets is set.
//
// Mempool information is not saved, since saving information in the
// estimator without saving the corresponding data in the mempool itself
// could result in transactions lingering in the estimator forever.
func (est *Estimator) loadFromDatabase(replaceBuckets bool) error {
	if est.db == nil {
		return errors.New("estimator database is not open")
	}

	// Database version is currently hardcoded here as this is the only
	// place that uses it.
	currentDbVersion := []byte{1}

	version, err := est.db.Get(dbKeyVersion, nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("error reading version from db: %w", err)
	}
	if len(version) < 1 {
		// No data in the file. Fill with the current config.
		batch := new(leveldb.Batch)
		var maxConfirmsBytes [4]byte

		batch.Put(dbKeyVersion, currentDbVersion)

		dbByteOrder.PutUint32(maxConfirmsBytes[:], uint32(est.feeStats.maxConfirms))
		batch.Put(dbKeyMaxConfirms, maxConfirmsBytes[:])

		for _, s := range []struct {
			stats *confirmStats
			keys  statsDBKeys
		}{{est.feeStats, feeDBKeys}, {est.priStats, priDBKeys}} {
			bounds, err := s.stats.encodeBounds()
			if err != nil {
				return fmt.Errorf("error writing bucket bounds to db: %w", err)
			}
			batch.Put(s.keys.bounds, bounds)
		}

		err = est.db.Write(batch, nil)
		if err != nil {
			return fmt.Errorf("error writing initial estimator db file: %w",
				err)
		}

		err = est.updateDatabase()
		if err != nil {
			return fmt.Errorf("error adding initial estimator data to db: %w",
				err)
		}

		log.Debug("Initialized fee estimator database")

		return nil
	}

	if !bytes.Equal(currentDbVersion, version) {
		return fmt.Errorf("incompatible database version: %d", version)
	}

	maxConfirmsBytes, err := est.db.Get(dbKeyMaxConfirms, nil)
	if err != nil {
		return fmt.Errorf("error reading max confirmation range from db file: "+
			"%w", err)
	}
	if len(maxConfirmsBytes) != 4 {
		return errors.New("wrong number of bytes in stored maxConfirms")
	}
	fileMaxConfirms := int32(dbByteOrder.Uint32(maxConfirmsBytes))
	if fileMaxConfirms > maxAllowedConfirms || fileMaxConfirms < 2 {
		return fmt.Errorf("confirmation count stored in database (%d) out "+
			"of range", fileMaxConfirms)
	}
	if !replaceBuckets && est.feeStats.maxConfirms != fileMaxConfirms {
		return errors.New("max confirmation range in database file different " +
			"than currently configured max confirmation")
	}

	feeStats, err := est.loadStats(feeDBKeys, est.feeStats, fileMaxConfirms,
		replaceBuckets)
	if err != nil {
		return err
	}
	priStats, err := est.loadStats(priDBKeys, est.priStats, fileMaxConfirms,
		replaceBuckets)
	if err != nil {
		return err
	}

	bestHeightBytes, err := est.db.Get(dbKeyBestHeight, nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("error reading best height from db: %w", err)
	}
	if len(bestHeightBytes) == 8 {
		est.bestHeight = int64(dbByteOrder.Uint64(bestHeightBytes))
	}

	est.feeStats = feeStats
	est.priStats = priStats
	log.Debugf("Loaded fee estimator database at height %d", est.bestHeight)

	return nil
}

// loadStats reads one kind of statistics from the database, validating its
// bucket bounds against current unless replaceBuckets is set.
func (est *Estimator) loadStats(keys statsDBKeys, current *confirmStats,
	maxConfirms int32, replaceBuckets bool) (*confirmStats, error) {

	serialized, err := est.db.Get(keys.bounds, nil)
	if err != nil {
		return nil, fmt.Errorf("error reading bucket bounds from db file: %w",
			err)
	}
	bounds, err := decodeBounds(serialized)
	if err != nil {
		return nil, fmt.Errorf("error decoding file bucket bounds: %w", err)
	}
	if len(bounds) == 0 {
		return nil, errors.New("bucket bounds not found in database file")
	}

	if !replaceBuckets {
		if len(current.bucketBounds) != len(bounds) {
			return nil, errors.New("number of buckets stored in database " +
				"file different than currently configured buckets")
		}
		for i, f := range bounds {
			if current.bucketBounds[i] != f {
				return nil, errors.New("bucket bounds stored in database " +
					"file different than currently configured bounds")
			}
		}
	}

	stats := newConfirmStats(bounds, maxConfirms, current.decay)
	iter := est.db.NewIterator(ldbutil.BytesPrefix(keys.prefix), nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		if len(key) != len(keys.prefix)+4 {
			return nil, fmt.Errorf("bucket key read from db has wrong "+
				"length (%d)", len(key))
		}
		idx := int(int32(dbByteOrder.Uint32(key[len(keys.prefix):])))
		if idx >= len(stats.buckets) || idx < 0 {
			return nil, fmt.Errorf("wrong bucket index read from db "+
				"(%d vs %d)", idx, len(stats.buckets))
		}
		bucket, err := decodeBucket(iter.Value(), maxConfirms)
		if err != nil {
			return nil, err
		}
		stats.buckets[idx] = bucket
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("error on bucket iterator: %w", err)
	}
	return stats, nil
}

// updateDatabase updates the current database file with the current bucket
// data. This is called during normal operation after processing mined
// transactions, so it only updates data that might have changed.
func (est *Estimator) updateDatabase() error {
	if est.db == nil {
		return errors.New("estimator database is closed")
	}

	batch := new(leveldb.Batch)
	for _, s := range []struct {
		stats  *confirmStats
		prefix []byte
	}{{est.feeStats, dbKeyFeeBucketPrefix}, {est.priStats, dbKeyPriBucketPrefix}} {
		key := make([]byte, len(s.prefix)+4)
		copy(key, s.prefix)
		for i := range s.stats.buckets {
			dbByteOrder.PutUint32(key[len(s.prefix):], uint32(i))
			batch.Put(key, encodeBucket(&s.stats.buckets[i]))
		}
	}

	var bestHeightBytes [8]byte
	dbByteOrder.PutUint64(bestHeightBytes[:], uint64(est.bestHeight))
	batch.Put(dbKeyBestHeight, bestHeightBytes[:])

	err := est.db.Write(batch, nil)
	if err != nil {
		return fmt.Errorf("error writing update to estimator db file: %w",
			err)
	}

	return nil
}

// EstimateFee calculates the suggested fee rate, in zatoshis per kilobyte,
// for a transaction to be confirmed in at most numBlocks blocks after
// publishing with a high degree of certainty.
//
// This function is safe to be called from multiple goroutines but might block
// until concurrent modifications to the internal database state are complete.
func (est *Estimator) EstimateFee(numBlocks int) (btcutil.Amount, error) {
	est.lock.RLock()
	rate, err := est.feeStats.estimateMedian(int32(numBlocks), defaultSuccessPct)
	minRate := est.feeStats.bucketBounds[0]
	est.lock.RUnlock()

	if err != nil {
		return 0, err
	}

	rate = math.Round(rate)
	if rate < minRate {
		// Never suggest less than the minimum tracked fee rate.
		rate = minRate
	}

	return btcutil.Amount(rate), nil
}

// EstimatePriority calculates the priority a transaction paying less than
// the minimum tracked fee rate needs to be confirmed in at most numBlocks
// blocks.
//
// This function is safe to be called from multiple goroutines.
func (est *Estimator) EstimatePriority(numBlocks int) (float64, error) {
	est.lock.RLock()
	defer est.lock.RUnlock()
	return est.priStats.estimateMedian(int32(numBlocks), defaultSuccessPct)
}

// Enable establishes the current best height of the blockchain after
// initializing the chain. All new mempool transactions will be added at this
// block height.
func (est *Estimator) Enable(bestHeight int64) {
	log.Debugf("Setting best height as %d", bestHeight)
	est.lock.Lock()
	est.bestHeight = bestHeight
	est.lock.Unlock()
}

// IsEnabled returns whether the fee estimator is ready to accept new mined and
// mempool transactions.
func (est *Estimator) IsEnabled() bool {
	est.lock.RLock()
	enabled := est.bestHeight > -1
	est.lock.RUnlock()
	return enabled
}

// AddMemPoolTransaction adds a mempool transaction to the estimator in order to
// account for it in the estimations.  Transactions paying at least the
// minimum tracked fee rate are tracked by fee rate, others by priority.
// Transactions that are not valid for estimation, typically because they
// depend on other mempool transactions, are ignored.
//
// This is safe to be called from multiple goroutines.
func (est *Estimator) AddMemPoolTransaction(txHash *chainhash.Hash, fee, size int64,
	priority float64, height int32, valid bool) {

	est.lock.Lock()
	defer est.lock.Unlock()

	if est.bestHeight < 0 || !valid || size <= 0 {
		return
	}

	if _, exists := est.memPoolTxs[*txHash]; exists {
		// we should not double count transactions
		return
	}

	// Note that we use this less exact version instead of fee * 1000 / size
	// (using ints) because it naturally "downsamples" the fee rates towards
	// the minimum, absorbing the small discrepancy towards a higher effective
	// rate wallets produce.
	rate := float64(fee / size * 1000)

	tx := memPoolTxDesc{addedHeight: est.bestHeight}
	switch {
	case rate >= est.feeStats.bucketBounds[0]:
		tx.kind, tx.val = trackedByFee, rate
		est.feeStats.newMemPoolTx(est.feeStats.lowerBucket(rate), rate)
		log.Debugf("Adding mempool tx %s using fee rate %.8f", txHash,
			rate/1e8)

	case priority >= est.priStats.bucketBounds[0]:
		tx.kind, tx.val = trackedByPriority, priority
		est.priStats.newMemPoolTx(est.priStats.lowerBucket(priority), priority)
		log.Debugf("Adding mempool tx %s using priority %.3g", txHash,
			priority)

	default:
		// Transactions paying less than the minimum tracked fee rate
		// without enough priority can only be mined in the free area of
		// blocks, so they are not tracked.
		return
	}
	est.memPoolTxs[*txHash] = tx
}

// stats returns the statistics kind tracks.
func (est *Estimator) stats(kind statKind) *confirmStats {
	if kind == trackedByPriority {
		return est.priStats
	}
	return est.feeStats
}

// RemoveMemPoolTransaction removes a mempool transaction from statistics
// tracking.
//
// This is safe to be called from multiple goroutines.
func (est *Estimator) RemoveMemPoolTransaction(txHash *chainhash.Hash) {
	est.lock.Lock()
	defer est.lock.Unlock()

	desc, exists := est.memPoolTxs[*txHash]
	if !exists {
		return
	}

	log.Debugf("Removing tx %s from mempool", txHash)

	est.stats(desc.kind).removeFromMemPool(int32(est.bestHeight-desc.addedHeight),
		desc.val)
	delete(est.memPoolTxs, *txHash)
}

// processMinedTransaction moves the transaction that exist in the currently
// tracked mempool into a mined state.  The confirmation delay is only
// recorded when record is set.
//
// This function is *not* safe to be called from multiple goroutines.
func (est *Estimator) processMinedTransaction(blockHeight int64, txh *chainhash.Hash,
	record bool) {

	desc, exists := est.memPoolTxs[*txh]
	if !exists {
		// Transactions the estimator did not see in the mempool are not
		// used since miners could otherwise include dummy high fee
		// transactions to inflate the estimates.
		log.Tracef("Processing previously unknown mined tx %s", txh)
		return
	}

	stats := est.stats(desc.kind)
	stats.removeFromMemPool(int32(blockHeight-desc.addedHeight), desc.val)
	delete(est.memPoolTxs, *txh)

	if blockHeight <= desc.addedHeight {
		log.Errorf("Mined transaction %s (%d) that was known from "+
			"mempool at a higher block height (%d)", txh, blockHeight,
			desc.addedHeight)
		return
	}
	if !record {
		return
	}

	mineDelay := int32(blockHeight - desc.addedHeight)
	log.Debugf("Processing mined tx %s (value %.8g, delay %d)", txh,
		desc.val, mineDelay)
	stats.newMinedTx(mineDelay, desc.val)
}

// ProcessBlock processes the mined mempool transactions of a block connected
// at height.  Confirmation delays are only recorded when the chain is
// current, since blocks downloaded during the initial sync say nothing about
// current fee pressure.  Database write failures are logged and otherwise
// ignored.
//
// This function is safe to be called from multiple goroutines.
func (est *Estimator) ProcessBlock(height int32, mined []*chainhash.Hash, current bool) {
	est.lock.Lock()
	defer est.lock.Unlock()

	if est.bestHeight < 0 {
		return
	}

	blockHeight := int64(height)
	if blockHeight <= est.bestHeight {
		// Reorgs are not tracked.
		log.Warnf("Trying to process mined transactions at block %d when "+
			"previous best block was at height %d", blockHeight,
			est.bestHeight)
		return
	}

	log.Debugf("Updated moving averages into block %d", blockHeight)
	est.feeStats.updateMovingAverages()
	est.priStats.updateMovingAverages()
	est.bestHeight = blockHeight

	for _, txh := range mined {
		est.processMinedTransaction(blockHeight, txh, current)
	}

	if est.db != nil {
		if err := est.updateDatabase(); err != nil {
			log.Warnf("Unable to persist fee estimator state: %v", err)
		}
	}
}

// Close closes the database (if it is currently opened).
func (est *Estimator) Close() {
	est.lock.Lock()

	if est.db != nil {
		log.Trace("Closing fee estimator database")
		est.db.Close()
		est.db = nil
	}

	est.lock.Unlock()
}
