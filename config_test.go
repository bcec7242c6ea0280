// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import (
	"reflect"
	"testing"

	"stomp.im/stomp/failover"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	if !reflect.DeepEqual(c.Versions, SupportedVersions) {
		t.Fatalf("Versions = %v, want %v", c.Versions, SupportedVersions)
	}
	if c.Logger != DiscardLogger {
		t.Fatal("expected default Logger to be DiscardLogger")
	}
	if c.Login != "" || c.Passcode != "" || c.Host != "" {
		t.Fatalf("expected empty credentials and host by default, got %+v", c)
	}
	if c.HeartBeat != (HeartBeat{}) {
		t.Fatalf("expected zero-value HeartBeat by default, got %+v", c.HeartBeat)
	}
}

func TestNewConfigDefaultsAreIndependentSlices(t *testing.T) {
	c1 := NewConfig()
	c2 := NewConfig()
	c1.Versions[0] = "mutated"
	if c2.Versions[0] == "mutated" {
		t.Fatal("expected each Config to own its own Versions slice")
	}
}

func TestWithVersions(t *testing.T) {
	c := NewConfig(WithVersions(V11))
	if !reflect.DeepEqual(c.Versions, []string{V11}) {
		t.Fatalf("Versions = %v, want [%s]", c.Versions, V11)
	}
}

func TestWithCredentials(t *testing.T) {
	c := NewConfig(WithCredentials("alice", "secret"))
	if c.Login != "alice" || c.Passcode != "secret" {
		t.Fatalf("got login=%q passcode=%q", c.Login, c.Passcode)
	}
}

func TestWithHost(t *testing.T) {
	c := NewConfig(WithHost("example.org"))
	if c.Host != "example.org" {
		t.Fatalf("Host = %q", c.Host)
	}
}

func TestWithHeartBeat(t *testing.T) {
	c := NewConfig(WithHeartBeat(1000, 500))
	if c.HeartBeat != (HeartBeat{Cx: 1000, Cy: 500}) {
		t.Fatalf("HeartBeat = %+v", c.HeartBeat)
	}
}

func TestWithLoggerNilFallsBackToDiscard(t *testing.T) {
	c := NewConfig(WithLogger(nil))
	if c.Logger != DiscardLogger {
		t.Fatal("expected a nil Logger option to fall back to DiscardLogger")
	}
}

func TestWithFailoverConfig(t *testing.T) {
	fc := failover.Config{Brokers: []failover.Broker{{Scheme: "tcp", Host: "h1", Port: 61613}}}
	c := NewConfig(WithFailoverConfig(fc))
	if !reflect.DeepEqual(c.FailoverConfig, fc) {
		t.Fatalf("FailoverConfig = %+v, want %+v", c.FailoverConfig, fc)
	}
}

func TestWithFailoverURI(t *testing.T) {
	c := NewConfig(WithFailoverURI("failover:(tcp://h1:61613,tcp://h2:61613)?randomize=false"))
	if len(c.FailoverConfig.Brokers) != 2 {
		t.Fatalf("Brokers = %+v, want 2 entries", c.FailoverConfig.Brokers)
	}
	if c.FailoverConfig.Randomize {
		t.Fatal("expected randomize=false to be honored")
	}
}

func TestWithFailoverURIPanicsOnMalformedURI(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a malformed failover uri")
		}
	}()
	NewConfig(WithFailoverURI("not-a-failover-uri"))
}

func TestBuildTransport(t *testing.T) {
	c := NewConfig(WithFailoverURI("failover:tcp://h1:61613"))
	tr := c.BuildTransport(nil)
	if tr == nil {
		t.Fatal("expected a non-nil Transport")
	}
	if _, _, err := tr.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
}
