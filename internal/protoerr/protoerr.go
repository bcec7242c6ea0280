// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package protoerr holds the typed error taxonomy shared by the root stomp
// package and failover: it lives here, rather than in package stomp itself,
// so that failover can report protocol-shaped errors (NoMoreBrokers,
// MalformedURI) without importing stomp -- which in turn lets stomp import
// failover to wire Config to a Transport. Callers outside this module use
// the stomp package's re-exported Kind/Error, not this package directly.
package protoerr // import "stomp.im/stomp/internal/protoerr"

import "fmt"

// Kind classifies an Error without relying on string matching.
type Kind uint8

const (
	ProtocolError Kind = iota
	MalformedFrame
	MalformedURI
	ConnectionTimeout
	ConnectionLost
	NoMoreBrokers
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case ProtocolError:
		return "protocol error"
	case MalformedFrame:
		return "malformed frame"
	case MalformedURI:
		return "malformed uri"
	case ConnectionTimeout:
		return "connection timeout"
	case ConnectionLost:
		return "connection lost"
	case NoMoreBrokers:
		return "no more brokers"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every exported function in this
// module. Its Kind is stable across Go versions and message wording changes,
// so callers should branch on Kind (or use Is) rather than parse Error().
type Error struct {
	Kind   Kind
	Reason string
	Err    error // wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap allows errors.Is/errors.As to see through to a wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind and, if target
// has a non-empty Reason, the same Reason. A reason-less target such as
// protoerr.KindErr(protoerr.MalformedFrame) therefore matches on Kind alone,
// so errors.Is checks work without exposing a sentinel value per kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// New builds an *Error of the given kind with a formatted reason.
func New(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Reason: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind that wraps cause.
func Wrap(k Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Reason: fmt.Sprintf(format, args...), Err: cause}
}

// KindErr returns a sentinel *Error with the given Kind and no reason, for
// use with errors.Is.
func KindErr(k Kind) error {
	return &Error{Kind: k}
}
