// Copyright 2019 The GEOSX Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sync"
	"sync/atomic"
	"unsafe"
)

// AddPolicy serializes concurrent additions into shared nodal arrays.
// Elements sharing nodes may scatter into the same slot from different
// goroutines in the same step; the policy guarantees every add-and-store
// is applied exactly once, so the final value is the order-independent
// arithmetic sum of all contributions.
type AddPolicy interface {
	Add(addr *float64, v float64)
}

// AtomicAdd implements the accumulate policy with a compare-and-swap loop
// on the bit pattern of the float64 slot
type AtomicAdd struct{}

func (AtomicAdd) Add(addr *float64, v float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		upd := math.Float64bits(math.Float64frombits(old) + v)
		if atomic.CompareAndSwapUint64(bits, old, upd) {
			return
		}
	}
}

// PlainAdd is the serial policy: a direct read-modify-write. Only valid
// when a single worker runs the element loop.
type PlainAdd struct{}

func (PlainAdd) Add(addr *float64, v float64) {
	*addr += v
}

// LockedAdd serializes additions with a set of striped mutexes selected by
// the slot address. Slower than AtomicAdd under contention but useful as
// an independent reference when validating the atomic policy.
type LockedAdd struct {
	mu [64]sync.Mutex
}

func NewLockedAdd() *LockedAdd { return new(LockedAdd) }

func (o *LockedAdd) Add(addr *float64, v float64) {
	s := (uintptr(unsafe.Pointer(addr)) >> 3) & 63
	o.mu[s].Lock()
	*addr += v
	o.mu[s].Unlock()
}
