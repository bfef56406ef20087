// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"
	"sync/atomic"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
)

// NotificationType represents the type of a notification message.
type NotificationType int

// NotificationCallback is used for a caller to provide a callback for
// notifications about various mempool events.
type NotificationCallback func(*Notification)

// Constants for the type of a notification message.
const (
	// NTTxAccepted indicates a transaction was added to the pool.
	NTTxAccepted NotificationType = iota

	// NTTxRemoved indicates a transaction left the pool.
	NTTxRemoved
)

// notificationTypeStrings is a map of notification types back to their constant
// names for pretty printing.
var notificationTypeStrings = map[NotificationType]string{
	NTTxAccepted: "NTTxAccepted",
	NTTxRemoved:  "NTTxRemoved",
}

// String returns the NotificationType in human-readable form.
func (n NotificationType) String() string {
	if s, ok := notificationTypeStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Notification Type (%d)", int(n))
}

// TxRemovedData is the data of an NTTxRemoved notification.
type TxRemovedData struct {
	Tx     *coinutil.Tx
	Reason RemovalReason
}

// Notification defines notification that is sent to the caller via the callback
// function provided during the call to Subscribe and consists of a
// notification type as well as associated data that depends on the type as
// follows:
//   - NTTxAccepted:   *coinutil.Tx
//   - NTTxRemoved:    *TxRemovedData
type Notification struct {
	Type NotificationType
	Data interface{}
}

// Subscribe registers callback to receive pool notifications.
func (mp *TxPool) Subscribe(callback NotificationCallback) {
	mp.notificationsLock.Lock()
	mp.notifications = append(mp.notifications, callback)
	mp.notificationsLock.Unlock()
}

func (mp *TxPool) sendNotification(typ NotificationType, data interface{}) {
	// Generate and send the notification.
	n := Notification{Type: typ, Data: data}
	mp.notificationsLock.RLock()
	for _, callback := range mp.notifications {
		callback(&n)
	}
	mp.notificationsLock.RUnlock()
}

// notifyRemoved sends an NTTxRemoved notification for each removed
// transaction.  It must be called without the mempool lock held so
// subscribers may query the pool.
func (mp *TxPool) notifyRemoved(removed []*TxDesc, reason RemovalReason) {
	for _, desc := range removed {
		mp.sendNotification(NTTxRemoved, &TxRemovedData{
			Tx:     desc.Tx,
			Reason: reason,
		})
	}
}

// NotifyRecentlyAdded sends an NTTxAccepted notification for every
// transaction added since the previous call that is still in the pool.
// Transactions removed in the meantime are skipped, and one added again
// after its removal is reported once.  Concurrent calls are serialised and
// subscribers run without the mempool lock held.
func (mp *TxPool) NotifyRecentlyAdded() {
	mp.notifyMtx.Lock()
	defer mp.notifyMtx.Unlock()

	mp.mtx.Lock()
	txs := make([]*coinutil.Tx, 0, len(mp.recentlyAdded))
	seen := make(map[chainhash.Hash]struct{}, len(mp.recentlyAdded))
	for _, tx := range mp.recentlyAdded {
		desc, ok := mp.pool[*tx.Hash()]
		if !ok || desc.Tx != tx {
			continue
		}
		if _, ok := seen[*tx.Hash()]; ok {
			continue
		}
		seen[*tx.Hash()] = struct{}{}
		txs = append(txs, tx)
	}
	sequence := mp.recentlyAddedSequence
	mp.recentlyAdded = nil
	mp.mtx.Unlock()

	for _, tx := range txs {
		mp.sendNotification(NTTxAccepted, tx)
	}

	atomic.StoreUint64(&mp.notifiedSequence, sequence)
}

// IsFullyNotified returns whether every added transaction has been passed
// to NotifyRecentlyAdded.
func (mp *TxPool) IsFullyNotified() bool {
	mp.mtx.RLock()
	sequence := mp.recentlyAddedSequence
	mp.mtx.RUnlock()

	return atomic.LoadUint64(&mp.notifiedSequence) == sequence
}
