// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package failover parses failover URIs and produces the (broker, delay)
// sequence a transport should follow when reconnecting. It never dials
// anything itself; it only computes what to try next and how long to wait
// first.
package failover // import "stomp.im/stomp/failover"

import "fmt"

// Broker is one candidate address in a failover list.
type Broker struct {
	Scheme string // "tcp" or "ssl"
	Host   string
	Port   int
}

// String renders the broker the way it appeared in the URI.
func (b Broker) String() string {
	return fmt.Sprintf("%s://%s:%d", b.Scheme, b.Host, b.Port)
}

// Config is a parsed failover URI: the broker list plus its reconnect
// policy (§3, FailoverConfig).
type Config struct {
	Brokers []Broker

	Randomize      bool
	PriorityBackup bool

	InitialReconnectDelayMS int
	MaxReconnectDelayMS     int
	BackOffMultiplier       float64
	UseExponentialBackOff   bool

	// MaxReconnectAttempts bounds attempts across the connection's
	// lifetime; -1 means unlimited.
	MaxReconnectAttempts int

	// StartupMaxReconnectAttempts, if positive, bounds attempts before the
	// first successful CONNECTED; 0 or -1 means inherit MaxReconnectAttempts
	// (§4.6, §9 open question).
	StartupMaxReconnectAttempts int

	// ReconnectDelayJitterMS, if positive, adds uniform jitter in [-J, +J]
	// to every delay after the first attempt, clamped at zero. Jitter is
	// applied only when the Transport was built with a Rand.
	ReconnectDelayJitterMS int
}

// defaultConfig mirrors ActiveMQ's own failover transport defaults, which
// this package's callers are most likely to already expect.
func defaultConfig() Config {
	return Config{
		Randomize:               true,
		InitialReconnectDelayMS: 10,
		MaxReconnectDelayMS:     30000,
		BackOffMultiplier:       2.0,
		UseExponentialBackOff:   false,
		MaxReconnectAttempts:    -1,
	}
}
