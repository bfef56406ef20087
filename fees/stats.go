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
	"sort"
	"strings"
)

type txConfirmStatBucketCount struct {
	txCount float64
	valSum  float64
}

type txConfirmStatBucket struct {
	confirmed    []txConfirmStatBucketCount
	confirmCount float64
	valSum       float64
}

// confirmStats tracks how many blocks transactions took to confirm grouped
// by buckets of a tracked value, which is either the fee rate or the
// priority of the transactions.
type confirmStats struct {
	// bucketBounds are the upper bounds for each individual bucket.
	bucketBounds []float64

	// buckets are the confirmed tx count and value sum by bucket.
	buckets []txConfirmStatBucket

	// memPool are the mempool transaction count and value sum by bucket.
	memPool []txConfirmStatBucket

	maxConfirms int32
	decay       float64
}

// makeBucketBounds returns geometrically spaced bucket bounds from min up to
// max, with extra inserted when it lies in between and a last bucket with an
// upper bound of +inf that catches everything else.
func makeBucketBounds(min, max, step, extra float64) []float64 {
	var bounds []float64
	prev := 0.0
	for v := min; v < max; v *= step {
		if v > extra && prev < extra {
			bounds = append(bounds, extra)
		}
		bounds = append(bounds, v)
		prev = v
	}
	return append(bounds, math.Inf(1))
}

// newConfirmStats returns empty statistics over the given bucket bounds.
func newConfirmStats(bounds []float64, maxConfirms int32, decay float64) *confirmStats {
	stats := &confirmStats{
		bucketBounds: bounds,
		buckets:      make([]txConfirmStatBucket, len(bounds)),
		memPool:      make([]txConfirmStatBucket, len(bounds)),
		maxConfirms:  maxConfirms,
		decay:        decay,
	}
	for i := range bounds {
		stats.buckets[i].confirmed = make([]txConfirmStatBucketCount, maxConfirms)
		stats.memPool[i].confirmed = make([]txConfirmStatBucketCount, maxConfirms)
	}
	return stats
}

// lowerBucket returns the bucket that has the highest upperBound such that it
// is still lower than val.
func (stats *confirmStats) lowerBucket(val float64) int32 {
	res := sort.Search(len(stats.bucketBounds), func(i int) bool {
		return stats.bucketBounds[i] >= val
	})
	return int32(res)
}

// confirmRange returns the confirmation range index to be used for the given
// number of blocks to confirm. The last confirmation range has an upper bound
// of +inf to mean that it represents all confirmations higher than the second
// to last bucket.
func (stats *confirmStats) confirmRange(blocksToConfirm int32) int32 {
	idx := blocksToConfirm - 1
	if idx >= stats.maxConfirms {
		return stats.maxConfirms - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// updateMovingAverages decays the existing confirmed statistics and moves
// the mempool statistics up one confirmation range.  This is meant to be
// called when a new block is mined, so that older information is
// discounted.
func (stats *confirmStats) updateMovingAverages() {
	for b := range stats.buckets {
		bucket := &stats.buckets[b]
		bucket.valSum *= stats.decay
		bucket.confirmCount *= stats.decay
		for c := range bucket.confirmed {
			conf := &bucket.confirmed[c]
			conf.valSum *= stats.decay
			conf.txCount *= stats.decay
		}
	}

	// For unconfirmed (mempool) transactions, every transaction will now take
	// at least one additional block to confirm.
	for b := range stats.memPool {
		bucket := &stats.memPool[b]

		// The last confirmation range represents all txs confirmed at >= than
		// the initial maxConfirms, so we *add* the second to last range into
		// the last range.
		c := len(bucket.confirmed) - 1
		bucket.confirmed[c].txCount += bucket.confirmed[c-1].txCount
		bucket.confirmed[c].valSum += bucket.confirmed[c-1].valSum

		for c--; c > 0; c-- {
			bucket.confirmed[c] = bucket.confirmed[c-1]
		}

		bucket.confirmed[0].txCount = 0
		bucket.confirmed[0].valSum = 0
	}
}

// newMemPoolTx records a new mempool transaction in the first confirmation
// range of its bucket.
func (stats *confirmStats) newMemPoolTx(bucketIdx int32, val float64) {
	conf := &stats.memPool[bucketIdx].confirmed[0]
	conf.valSum += val
	conf.txCount++
}

// newMinedTx moves a mined tx from the mempool into the confirmed statistics.
// Note that this should only be called if the transaction had been seen and
// previously tracked by calling newMemPoolTx for it.
func (stats *confirmStats) newMinedTx(blocksToConfirm int32, val float64) {
	bucketIdx := stats.lowerBucket(val)
	confirmIdx := stats.confirmRange(blocksToConfirm)
	bucket := &stats.buckets[bucketIdx]

	// Increase the counts for all confirmation ranges starting at the first
	// confirmIdx because it took at least `blocksToConfirm` for this tx to be
	// mined.
	for c := int(confirmIdx); c < len(bucket.confirmed); c++ {
		conf := &bucket.confirmed[c]
		conf.valSum += val
		conf.txCount++
	}
	bucket.confirmCount++
	bucket.valSum += val
}

func (stats *confirmStats) removeFromMemPool(blocksInMemPool int32, val float64) {
	bucketIdx := stats.lowerBucket(val)
	confirmIdx := stats.confirmRange(blocksInMemPool + 1)
	conf := &stats.memPool[bucketIdx].confirmed[confirmIdx]
	conf.valSum -= val
	conf.txCount--
	if conf.txCount < 0 {
		// The transaction was never passed to newMemPoolTx.  The
		// statistics are in an undefined state and the database should
		// be deleted.
		log.Errorf("Transaction count in bucket index %d and confirmation "+
			"index %d became < 0", bucketIdx, confirmIdx)
	}
}

// estimateMedian estimates the median tracked value such that at least
// successPct transactions have been mined on all tracked buckets with a
// value >= to the median within targetConfs confirmations.
func (stats *confirmStats) estimateMedian(targetConfs int32, successPct float64) (float64, error) {
	if targetConfs <= 0 {
		return 0, errors.New("target confirmation range cannot be <= 0")
	}

	const minTxCount float64 = 1

	if (targetConfs - 1) >= stats.maxConfirms {
		return 0, ErrTargetConfTooLarge{MaxConfirms: stats.maxConfirms,
			ReqConfirms: targetConfs}
	}

	startIdx := len(stats.buckets) - 1
	confirmRangeIdx := stats.confirmRange(targetConfs)

	var totalTxs, confirmedTxs float64
	bestBucketsStt := startIdx
	bestBucketsEnd := startIdx
	curBucketsEnd := startIdx

	for b := startIdx; b >= 0; b-- {
		totalTxs += stats.buckets[b].confirmCount
		confirmedTxs += stats.buckets[b].confirmed[confirmRangeIdx].txCount

		// A large mempool backlog in a bucket means miners are reluctant
		// to include those transactions.
		totalTxs += stats.memPool[b].confirmed[confirmRangeIdx].txCount

		if totalTxs > minTxCount {
			if confirmedTxs/totalTxs < successPct {
				if curBucketsEnd == startIdx {
					return 0, ErrNoSuccessPctBucketFound
				}
				break
			}

			bestBucketsStt = b
			bestBucketsEnd = curBucketsEnd
			curBucketsEnd = b - 1
			totalTxs = 0
			confirmedTxs = 0
		}
	}

	txCount := float64(0)
	for b := bestBucketsStt; b <= bestBucketsEnd; b++ {
		txCount += stats.buckets[b].confirmCount
	}
	if txCount <= 0 {
		return 0, ErrNotEnoughTxsForEstimate
	}
	txCount /= 2
	for b := bestBucketsStt; b <= bestBucketsEnd; b++ {
		if stats.buckets[b].confirmCount < txCount {
			txCount -= stats.buckets[b].confirmCount
		} else {
			return stats.buckets[b].valSum / stats.buckets[b].confirmCount, nil
		}
	}

	return 0, errors.New("this isn't supposed to be reached")
}

// dump writes the confirmed statistics as a table with one row per bucket,
// scaling bucket bounds and averages by scale.
func (stats *confirmStats) dump(w *strings.Builder, scale float64) {
	w.WriteString("          |")
	for c := 0; c < int(stats.maxConfirms); c++ {
		if c == int(stats.maxConfirms)-1 {
			fmt.Fprintf(w, "   %15s", "+Inf")
		} else {
			fmt.Fprintf(w, "   %15d|", c+1)
		}
	}
	w.WriteString("\n")

	for i, bound := range stats.bucketBounds {
		fmt.Fprintf(w, "%10.8g", bound/scale)
		for c := 0; c < int(stats.maxConfirms); c++ {
			avg := float64(0)
			conf := stats.buckets[i].confirmed[c]
			if conf.txCount > 0 {
				avg = conf.valSum / conf.txCount / scale
			}
			fmt.Fprintf(w, "| %.8g %6.1f", avg, conf.txCount)
		}
		w.WriteString("\n")
	}
}

// encodeBounds serializes the bucket bounds.
func (stats *confirmStats) encodeBounds() ([]byte, error) {
	var b bytes.Buffer
	if err := binary.Write(&b, dbByteOrder, stats.bucketBounds); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// decodeBounds deserializes bucket bounds written by encodeBounds.
func decodeBounds(serialized []byte) ([]float64, error) {
	n := len(serialized) / 8
	if n > maxAllowedBuckets {
		return nil, fmt.Errorf("more buckets stored in file (%d) than "+
			"allowed (%d)", n, maxAllowedBuckets)
	}
	bounds := make([]float64, n)
	err := binary.Read(bytes.NewReader(serialized), dbByteOrder, &bounds)
	if err != nil {
		return nil, err
	}
	return bounds, nil
}

// encodeBucket serializes the confirmed statistics of a bucket.
func encodeBucket(b *txConfirmStatBucket) []byte {
	buf := make([]byte, 0, 16+len(b.confirmed)*16)
	var fbytes [8]byte
	writef := func(f float64) {
		dbByteOrder.PutUint64(fbytes[:], math.Float64bits(f))
		buf = append(buf, fbytes[:]...)
	}
	writef(b.confirmCount)
	writef(b.valSum)
	for _, c := range b.confirmed {
		writef(c.txCount)
		writef(c.valSum)
	}
	return buf
}

// decodeBucket deserializes a bucket written by encodeBucket.
func decodeBucket(value []byte, maxConfirms int32) (txConfirmStatBucket, error) {
	var bucket txConfirmStatBucket
	if len(value) != 16+int(maxConfirms)*16 {
		return bucket, errors.New("wrong size of data in bucket read from db")
	}
	readf := func() float64 {
		f := math.Float64frombits(dbByteOrder.Uint64(value))
		value = value[8:]
		return f
	}
	bucket.confirmCount = readf()
	bucket.valSum = readf()
	bucket.confirmed = make([]txConfirmStatBucketCount, maxConfirms)
	for i := range bucket.confirmed {
		bucket.confirmed[i].txCount = readf()
		bucket.confirmed[i].valSum = readf()
	}
	return bucket, nil
}
