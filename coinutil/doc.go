// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package coinutil provides immutable, shareable wrappers around wire types.

A Tx caches its hash and serialized size at creation so that the transaction
pool and every index built over it can refer to the same object without
recomputing either.  Amounts are expressed with btcutil.Amount.
*/
package coinutil
