// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package command implements the version-aware, stateless construction and
// validation of every STOMP client and server frame.
//
// Each builder is a pure function: given typed arguments and a negotiated
// protocol version, it returns a fully-formed *stomp.Frame or rejects the
// call with a ProtocolError before any bytes would be written. Nothing here
// holds state across calls -- that is the session package's job.
package command // import "stomp.im/stomp/command"

import "stomp.im/stomp"

// rules captures the per-version requirements this package enforces. It is
// the "small per-version dispatch table" the design notes call for, rather
// than a class hierarchy per version.
type rules struct {
	subscribeNeedsID   bool
	unsubscribeNeedsID bool
	nackAllowed        bool
}

func rulesFor(version string) (rules, error) {
	switch version {
	case stomp.V10:
		return rules{}, nil
	case stomp.V11, stomp.V12:
		return rules{
			subscribeNeedsID:   true,
			unsubscribeNeedsID: true,
			nackAllowed:        true,
		}, nil
	default:
		return rules{}, stomp.ProtocolErrorf("unsupported version %q", version)
	}
}
