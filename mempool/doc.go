// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package mempool provides a pool of unconfirmed transactions for a chain with
transparent outputs, shielded notes and identity and currency registrations.

The pool does not validate transactions itself.  Callers admit already
validated transactions with AddUnchecked and the pool keeps every index it
owns consistent with its contents:

  - the outpoints spent by pooled transactions, used to detect double spends
    and to find the transactions that redeem a pooled transaction
  - the nullifiers revealed per shielded pool generation
  - the address index and the optional spent index
  - the identity names and currency definitions claimed by pooled
    transactions
  - prioritisation deltas and reserve transaction descriptors

When blocks are connected or disconnected the owner calls RemoveForBlock,
RemoveForReorg, RemoveWithAnchor, RemoveExpired and RemoveWithoutBranchID to
evict everything the new chain state invalidates.  Removal always takes the
transactions that depend on an evicted transaction with it.

Check verifies every invariant against a coin view and is intended for test
networks and debugging.

Errors

Errors returned by this package are either the raw errors provided by
underlying calls or of type mempool.RuleError.  A failed Check returns an
AssertError, which indicates an internal inconsistency and should be treated
as fatal.
*/
package mempool
