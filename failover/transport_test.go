// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package failover

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"stomp.im/stomp/internal/protoerr"
)

func TestTransportProducesDocumentedSequence(t *testing.T) {
	cfg, err := ParseURI("failover:(tcp://h1:1,tcp://h2:2)?randomize=false&initialReconnectDelay=100&backOffMultiplier=2&useExponentialBackOff=true&maxReconnectDelay=500&maxReconnectAttempts=5")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)

	want := []struct {
		broker string
		delay  time.Duration
	}{
		{"tcp://h1:1", 0},
		{"tcp://h2:2", 100 * time.Millisecond},
		{"tcp://h1:1", 200 * time.Millisecond},
		{"tcp://h2:2", 400 * time.Millisecond},
		{"tcp://h1:1", 500 * time.Millisecond},
	}
	for i, w := range want {
		b, d, err := tr.Next()
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
		if b.String() != w.broker || d != w.delay {
			t.Fatalf("attempt %d: got (%s, %s), want (%s, %s)", i, b, d, w.broker, w.delay)
		}
	}
	if _, _, err := tr.Next(); !errors.Is(err, protoerr.KindErr(protoerr.NoMoreBrokers)) {
		t.Fatalf("expected NoMoreBrokers after exhausting attempts, got %v", err)
	}
}

func TestTransportUnlimitedByDefault(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:1")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)
	for i := 0; i < 50; i++ {
		if _, _, err := tr.Next(); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
	}
}

func TestTransportSucceededResetsAttempts(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:1?maxReconnectAttempts=1")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)
	if _, _, err := tr.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := tr.Next(); err == nil {
		t.Fatal("expected NoMoreBrokers before Succeeded resets the counter")
	}
	tr.Succeeded()
	if _, _, err := tr.Next(); err != nil {
		t.Fatalf("expected a fresh attempt budget after Succeeded, got %v", err)
	}
}

func TestTransportStartupLimitAppliesOnlyBeforeFirstSuccess(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:1?maxReconnectAttempts=10&startupMaxReconnectAttempts=1")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)
	if _, _, err := tr.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := tr.Next(); err == nil {
		t.Fatal("expected startupMaxReconnectAttempts to cut off before first CONNECTED")
	}
	tr.Succeeded()
	for i := 0; i < 5; i++ {
		if _, _, err := tr.Next(); err != nil {
			t.Fatalf("attempt %d after success: unexpected error: %v", i, err)
		}
	}
}

type fakeLogger struct {
	debugs, errors []string
}

func (f *fakeLogger) Debugf(format string, args ...interface{}) {
	f.debugs = append(f.debugs, fmt.Sprintf(format, args...))
}

func (f *fakeLogger) Errorf(format string, args ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func TestTransportUsesSuppliedLogger(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:1?maxReconnectAttempts=1")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	log := &fakeLogger{}
	tr := New(cfg, nil, log)
	if _, _, err := tr.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.debugs) == 0 {
		t.Fatal("expected Next to log a debug message via the supplied Logger")
	}
	if _, _, err := tr.Next(); err == nil {
		t.Fatal("expected exhaustion error")
	}
	if len(log.errors) == 0 {
		t.Fatal("expected exhaustion to log an error message via the supplied Logger")
	}
}

func TestTransportClientIDIsStableAndNonEmpty(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:1")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)
	id := tr.ClientID()
	if id == "" {
		t.Fatal("expected a non-empty client id")
	}
	if tr.ClientID() != id {
		t.Fatal("expected ClientID to be stable across calls")
	}
}

func TestPriorityBackupRetriesPrimaryEveryPass(t *testing.T) {
	cfg, err := ParseURI("failover:(tcp://primary:1,tcp://backup:2)?randomize=false&priorityBackup=true")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	tr := New(cfg, nil, nil)
	var got []string
	for i := 0; i < 4; i++ {
		b, _, err := tr.Next()
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
		got = append(got, b.Host)
	}
	want := []string{"primary", "backup", "primary", "backup"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
