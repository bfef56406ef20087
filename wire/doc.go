// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the transaction model of the chain.

Transparent inputs and outpoints are shared with the bitcoin wire package.
On top of them a transaction carries Sprout join-splits, Sapling spend and
output descriptions and, per output, an optional smart-transaction
condition.  Conditions carry typed payloads such as identity reservations,
currency definitions, notarizations and cross-chain exports and imports.

Transactions before the overwinter upgrade use the legacy format.  Later
transactions set the overwintered bit in the header and commit to a version
group and an expiry height.
*/
package wire
