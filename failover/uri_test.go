// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package failover

import "testing"

func TestParseURIRejectsMissingScheme(t *testing.T) {
	if _, err := ParseURI("tcp://h:1"); err == nil {
		t.Fatal("expected error for uri missing failover: scheme")
	}
}

func TestParseURIShortForm(t *testing.T) {
	cfg, err := ParseURI("failover:tcp://h1:61613")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != (Broker{Scheme: "tcp", Host: "h1", Port: 61613}) {
		t.Fatalf("brokers = %+v", cfg.Brokers)
	}
}

func TestParseURIMultipleBrokersAndQuery(t *testing.T) {
	cfg, err := ParseURI("failover:(tcp://h1:1,ssl://h2:2)?randomize=false&priorityBackup=true&maxReconnectAttempts=3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Brokers) != 2 {
		t.Fatalf("brokers = %+v, want 2", cfg.Brokers)
	}
	if cfg.Brokers[0] != (Broker{Scheme: "tcp", Host: "h1", Port: 1}) {
		t.Fatalf("brokers[0] = %+v", cfg.Brokers[0])
	}
	if cfg.Brokers[1] != (Broker{Scheme: "ssl", Host: "h2", Port: 2}) {
		t.Fatalf("brokers[1] = %+v", cfg.Brokers[1])
	}
	if cfg.Randomize {
		t.Fatal("expected randomize=false to be honored")
	}
	if !cfg.PriorityBackup {
		t.Fatal("expected priorityBackup=true to be honored")
	}
	if cfg.MaxReconnectAttempts != 3 {
		t.Fatalf("maxReconnectAttempts = %d, want 3", cfg.MaxReconnectAttempts)
	}
}

func TestParseURIRejectsUnbalancedParens(t *testing.T) {
	if _, err := ParseURI("failover:(tcp://h1:1,tcp://h2:2"); err == nil {
		t.Fatal("expected error for unbalanced parentheses")
	}
}

func TestParseURIRejectsUnsupportedScheme(t *testing.T) {
	if _, err := ParseURI("failover:udp://h1:1"); err == nil {
		t.Fatal("expected error for unsupported broker scheme")
	}
}

func TestParseURIRejectsMissingPort(t *testing.T) {
	if _, err := ParseURI("failover:tcp://h1"); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestParseURIRejectsInvalidQueryValue(t *testing.T) {
	if _, err := ParseURI("failover:tcp://h1:1?randomize=maybe"); err == nil {
		t.Fatal("expected error for invalid boolean query value")
	}
}
