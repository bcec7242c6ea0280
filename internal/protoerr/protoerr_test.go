// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package protoerr

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	e := New(MalformedURI, "broker %q is missing a port", "tcp://h1")
	want := `malformed uri: broker "tcp://h1" is missing a port`
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestErrorStringNoReason(t *testing.T) {
	e := KindErr(NoMoreBrokers)
	if e.Error() != "no more brokers" {
		t.Fatalf("Error() = %q, want %q", e.Error(), "no more brokers")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(MalformedURI, cause, "parsing failed")
	if !errors.Is(e, cause) {
		t.Fatal("expected errors.Is to see through to the wrapped cause")
	}
}

func TestIsMatchesOnKindOnly(t *testing.T) {
	e := New(NoMoreBrokers, "exhausted 5 attempts")
	if !errors.Is(e, KindErr(NoMoreBrokers)) {
		t.Fatal("expected errors.Is to match a bare KindErr sentinel")
	}
	if errors.Is(e, KindErr(MalformedURI)) {
		t.Fatal("expected errors.Is not to match a different Kind")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		ProtocolError:     "protocol error",
		MalformedFrame:    "malformed frame",
		MalformedURI:      "malformed uri",
		ConnectionTimeout: "connection timeout",
		ConnectionLost:    "connection lost",
		NoMoreBrokers:     "no more brokers",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
