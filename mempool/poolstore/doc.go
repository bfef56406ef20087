// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package poolstore persists a snapshot of the memory pool across restarts.

A snapshot holds every pooled transaction together with the time it entered
the pool, plus every recorded prioritisation delta.  Transactions are stored
so that a parent is always written before the transactions spending it, which
lets Load feed them back through normal acceptance in a valid order.

The snapshot lives in a pebble database:

	v                      format version (uint32, big endian)
	t | sequence (uint32)  added time (int64 unix nanoseconds) | transaction
	d | txid               priority delta (float64 bits) | fee delta (int64)

Dump replaces any previous snapshot atomically.
*/
package poolstore
