// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package stomp implements the wire format, version-aware command
// construction, and in-memory session state machine of the STOMP protocol
// (versions 1.0, 1.1, and 1.2).
//
// The package is transport agnostic: it never opens a socket and never
// blocks. Callers feed it bytes read from whatever transport they use
// (stomp/parser), ask it to build outbound frames (stomp/command), and drive
// a Session through the connection lifecycle as frames arrive. Reconnect
// policy for a cluster of brokers lives in stomp/failover and is likewise
// pure: it hands back addresses and delays, never dials anything itself.
package stomp // import "stomp.im/stomp"
