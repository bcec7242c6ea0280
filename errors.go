// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import "stomp.im/stomp/internal/protoerr"

// Kind classifies an Error without relying on string matching, mirroring the
// teacher's condition-typed StreamError: callers can switch on Kind instead
// of comparing error text. Kind and Error are defined in internal/protoerr
// and re-exported here so that failover can report the same error taxonomy
// without importing this package -- which in turn lets this package import
// failover to wire Config to a Transport.
type Kind = protoerr.Kind

const (
	// ProtocolError indicates a command or header combination that is
	// illegal for the negotiated version, or a server frame that violates
	// the session's current state.
	ProtocolError = protoerr.ProtocolError

	// MalformedFrame indicates bytes that cannot be parsed as a frame, or
	// headers that fail to decode under the negotiated version's escaping
	// rules.
	MalformedFrame = protoerr.MalformedFrame

	// MalformedURI indicates a failover URI that cannot be parsed.
	MalformedURI = protoerr.MalformedURI

	// ConnectionTimeout indicates that CONNECTED was not received within
	// the caller-specified window.
	ConnectionTimeout = protoerr.ConnectionTimeout

	// ConnectionLost indicates the transport closed unexpectedly.
	ConnectionLost = protoerr.ConnectionLost

	// NoMoreBrokers indicates a failover iterator has been exhausted.
	NoMoreBrokers = protoerr.NoMoreBrokers
)

// Error is the error type returned by every exported function in this
// module. Its Kind is stable across Go versions and message wording changes,
// so callers should branch on Kind (or use Is) rather than parse Error().
type Error = protoerr.Error

// newError builds an *Error of the given kind with a formatted reason.
func newError(k Kind, format string, args ...interface{}) *Error {
	return protoerr.New(k, format, args...)
}

// wrapError builds an *Error of the given kind that wraps cause.
func wrapError(k Kind, cause error, format string, args ...interface{}) *Error {
	return protoerr.Wrap(k, cause, format, args...)
}

// ErrKind returns a sentinel *Error with the given Kind and no reason, for
// use with errors.Is(err, stomp.ErrKind(stomp.MalformedFrame)).
func ErrKind(k Kind) error {
	return protoerr.KindErr(k)
}

// Exported error constructors used by sibling packages (parser, command,
// session) that cannot reach the unexported newError/wrapError helpers
// directly. failover uses internal/protoerr directly instead of these, since
// it cannot import this package (see the Kind doc comment above).

// MalformedFrameError builds a MalformedFrame *Error.
func MalformedFrameError(format string, args ...interface{}) error {
	return newError(MalformedFrame, format, args...)
}

// WrapMalformedFrameError builds a MalformedFrame *Error wrapping cause.
func WrapMalformedFrameError(cause error, format string, args ...interface{}) error {
	return wrapError(MalformedFrame, cause, format, args...)
}

// ProtocolErrorf builds a ProtocolError *Error.
func ProtocolErrorf(format string, args ...interface{}) error {
	return newError(ProtocolError, format, args...)
}

// MalformedURIError builds a MalformedURI *Error.
func MalformedURIError(format string, args ...interface{}) error {
	return newError(MalformedURI, format, args...)
}

// WrapMalformedURIError builds a MalformedURI *Error wrapping cause.
func WrapMalformedURIError(cause error, format string, args ...interface{}) error {
	return wrapError(MalformedURI, cause, format, args...)
}

// NoMoreBrokersError builds a NoMoreBrokers *Error.
func NoMoreBrokersError(format string, args ...interface{}) error {
	return newError(NoMoreBrokers, format, args...)
}

// ConnectionTimeoutError builds a ConnectionTimeout *Error.
func ConnectionTimeoutError(format string, args ...interface{}) error {
	return newError(ConnectionTimeout, format, args...)
}

// ConnectionLostError builds a ConnectionLost *Error.
func ConnectionLostError(format string, args ...interface{}) error {
	return newError(ConnectionLost, format, args...)
}
