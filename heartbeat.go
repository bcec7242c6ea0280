// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import (
	"strconv"
	"strings"
)

// HeartBeat is a negotiated or requested heart-beat pair, in milliseconds.
// Cx is "how often I will send", Cy is "how often I want to receive". A
// value of 0 in either position means "cannot" or "does not want".
type HeartBeat struct {
	Cx int
	Cy int
}

// String renders the heart-beat header value "cx,cy".
func (h HeartBeat) String() string {
	return strconv.Itoa(h.Cx) + "," + strconv.Itoa(h.Cy)
}

// ParseHeartBeat parses a heart-beat header value of the form "cx,cy".
func ParseHeartBeat(s string) (HeartBeat, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return HeartBeat{}, newError(ProtocolError, "malformed heart-beat header %q", s)
	}
	cx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return HeartBeat{}, newError(ProtocolError, "malformed heart-beat header %q", s)
	}
	cy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return HeartBeat{}, newError(ProtocolError, "malformed heart-beat header %q", s)
	}
	if cx < 0 || cy < 0 {
		return HeartBeat{}, newError(ProtocolError, "negative heart-beat interval in %q", s)
	}
	return HeartBeat{Cx: cx, Cy: cy}, nil
}

// Negotiate computes the negotiated (send, receive) interval pair from the
// client's requested HeartBeat (client) and the server's advertised
// HeartBeat (server), per the STOMP spec: the effective send interval is
// max(client.Cx, server.Cy) unless either side asked for 0 in that
// direction, in which case the direction is disabled (0).
func (client HeartBeat) Negotiate(server HeartBeat) (send, receive int) {
	send = maxNonZero(client.Cx, server.Cy)
	receive = maxNonZero(client.Cy, server.Cx)
	return send, receive
}

// maxNonZero returns max(a, b) unless either is 0, in which case the result
// is 0: a zero on either side means that side cannot or will not support
// the corresponding direction, which disables it outright rather than just
// lower-bounding it.
func maxNonZero(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > b {
		return a
	}
	return b
}
