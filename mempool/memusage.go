// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"reflect"
)

var (
	pointerSize         = int64(reflect.TypeOf(uintptr(0)).Size())
	hashSize            = int64(32)
	outPointSize        = hashSize + 4
	inPointSize         = pointerSize + 4
	txDescSize          = int64(reflect.TypeOf(TxDesc{}).Size())
	priorityDeltaSize   = int64(reflect.TypeOf(PriorityDelta{}).Size())
	addrIndexEntrySize  = int64(reflect.TypeOf(AddressIndexKey{}).Size() + reflect.TypeOf(AddressDeltaValue{}).Size())
	spentIndexEntrySize = outPointSize + int64(reflect.TypeOf(SpentIndexValue{}).Size())
)

// mapEntryOverhead approximates the per entry bookkeeping of a Go map.
const mapEntryOverhead = 16

// mapUsage estimates the memory used by a map with n entries of entrySize
// bytes each.
func mapUsage(n int, entrySize int64) int64 {
	return int64(n) * (entrySize + mapEntryOverhead)
}

// dynamicMemUsage returns the number of bytes referenced by v, including
// what its pointers, slices and maps refer to.
func dynamicMemUsage(v reflect.Value) uintptr {
	t := v.Type()
	bytes := t.Size()

	// For complex types, we need to peek inside slices/arrays/structs/maps
	// and chase pointers.
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			bytes += dynamicMemUsage(v.Elem())
		}
	case reflect.Array, reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			vi := v.Index(j)
			k := vi.Type().Kind()
			elemB := uintptr(0)
			if t.Kind() == reflect.Array {
				if (k == reflect.Pointer || k == reflect.Interface) && !vi.IsNil() {
					elemB += dynamicMemUsage(vi.Elem())
				}
			} else { // slice
				elemB += dynamicMemUsage(vi)
			}
			if k == reflect.Uint8 {
				// short circuit for byte slice/array
				bytes += elemB * uintptr(v.Len())
				break
			}
			bytes += elemB
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			bytes += dynamicMemUsage(iter.Key())
			bytes += dynamicMemUsage(iter.Value())
		}
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(t) {
			vf := v.FieldByIndex(f.Index)
			k := vf.Type().Kind()
			if (k == reflect.Pointer || k == reflect.Interface) && !vf.IsNil() {
				bytes += dynamicMemUsage(vf.Elem())
			} else if k == reflect.Array || k == reflect.Slice {
				bytes -= vf.Type().Size()
				bytes += dynamicMemUsage(vf)
			}
		}
	}

	return bytes
}
