// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package stomptest provides small test doubles for the clock and the
// randomness this module's core packages take as injectable dependencies,
// mirroring the teacher's practice of a `*test` helper package kept beside
// the code it supports.
package stomptest // import "stomp.im/stomp/stomptest"

// Clock is a fake session.Clock. The zero value starts at millisecond 0;
// advance it explicitly with Set or Advance between assertions.
type Clock struct {
	now int64
}

// NowMillis implements session.Clock.
func (c *Clock) NowMillis() int64 {
	return c.now
}

// Set pins the clock to a specific millisecond value.
func (c *Clock) Set(ms int64) {
	c.now = ms
}

// Advance moves the clock forward by delta milliseconds.
func (c *Clock) Advance(delta int64) {
	c.now += delta
}

// Rand is a fake failover.Rand. Shuffle applies a caller-supplied
// permutation instead of a random one, and Float64 replays a fixed
// sequence of values (repeating the last one once exhausted), so tests get
// a deterministic sequence instead of a fixed constant.
type Rand struct {
	// Permutation, if non-nil, is used by Shuffle: Permutation[i] is the
	// position the element at index i is moved to. A nil Permutation makes
	// Shuffle a no-op, leaving the input order untouched.
	Permutation []int

	// Floats is the sequence Float64 returns, one value per call.
	Floats []float64
	next   int
}

// Shuffle implements failover.Rand by applying Permutation, or doing
// nothing if it is unset.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	if r.Permutation == nil {
		return
	}
	// Move each element to its Permutation position using only swap, since
	// that is all the Rand interface gives us to work with. perm tracks the
	// destination of whatever element currently sits at each index.
	perm := append([]int(nil), r.Permutation...)
	for i := 0; i < n; i++ {
		target := perm[i]
		for target != i {
			swap(i, target)
			perm[i], perm[target] = perm[target], perm[i]
			target = perm[i]
		}
	}
}

// Float64 returns the next value from Floats, holding on the last value
// once the sequence is exhausted. With no values configured it returns 0.
func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	if r.next >= len(r.Floats) {
		return r.Floats[len(r.Floats)-1]
	}
	v := r.Floats[r.next]
	r.next++
	return v
}
