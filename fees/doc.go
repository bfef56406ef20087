// Copyright (c) 2018-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package fees tracks how long mempool transactions take to be mined in order
to estimate the fee rate or the priority a new transaction needs to be mined
within a target number of blocks.

The approach is the one of bitcoin core v0.14 fee estimation extended with
the priority statistics of earlier versions:

  - Transactions entering the mempool are tracked by fee rate when they pay
    at least the lowest fee rate bucket, otherwise by priority when their
    priority is at least the lowest priority bucket.
  - Each tracked value falls in one of a set of geometrically spaced
    buckets.  For each bucket, the estimator counts how many transactions
    confirmed within each number of blocks.
  - Every connected block decays the existing statistics so that recent
    blocks weigh more, and moves the transactions still in the mempool one
    confirmation range further.
  - An estimate for a target number of blocks is the median value of the
    lowest group of buckets for which at least 95% of the transactions
    confirmed within the target.

Transactions the estimator never saw in the mempool are ignored when mined, so
that miners cannot inflate estimates by mining unpublished high fee
transactions.

The confirmed statistics of both kinds are persisted to a leveldb database
after every block.  Mempool statistics are not persisted since they would be
stale after a restart.

The Estimator type implements the FeeEstimator interface of the mempool
package.
*/
package fees
