// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package idgen generates the identifiers the session and failover packages
// hand out when a caller does not supply their own: subscription tokens,
// receipt ids, and client-id hints.
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// New returns a new random identifier suitable for a subscription token or
// receipt id.
func New() string {
	return uuid.NewString()
}

// RandomLen generates a random hex identifier of length n. It exists for
// callers -- tests, mostly -- that want a shorter identifier than a full
// UUID. If the OS's entropy pool can't produce randomness, it panics, same
// as the crypto/rand-backed generator this package replaced.
func RandomLen(n int) string {
	return randomHex(n, rand.Reader)
}

func randomHex(n int, r io.Reader) string {
	b := make([]byte, (n/2)+(n&1))
	if _, err := io.ReadFull(r, b); err != nil {
		panic(fmt.Errorf("idgen: could not read enough randomness: %w", err))
	}
	return fmt.Sprintf("%x", b)[:n]
}
