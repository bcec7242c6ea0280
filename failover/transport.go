// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package failover

import (
	"time"

	"github.com/jpillora/backoff"

	"stomp.im/stomp/internal/idgen"
	"stomp.im/stomp/internal/protoerr"
)

// clientIDLen is the length of the random client id component this package
// generates for brokers that expect one appended to the CONNECT host
// header (e.g. ActiveMQ's "vhost#clientId" convention) to distinguish
// reconnects of the same logical client.
const clientIDLen = 8

// Rand is the randomness a Transport needs: shuffling the broker list and
// computing jitter. *math/rand.Rand satisfies it directly; tests inject a
// deterministic implementation (§9, "failover RNG injected via a small Rand
// interface to keep tests deterministic").
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	Float64() float64
}

// Transport produces the sequence of (broker, delay) pairs a client should
// follow while reconnecting, per the policy in a Config. It does not dial
// anything -- Next only tells the caller who to try and how long to wait
// first.
type Transport struct {
	cfg      Config
	brokers  []Broker
	rand     Rand
	logger   Logger
	clientID string

	backoff *backoff.Backoff

	pass      int
	index     int
	attempts  int
	pastFirst bool // whether a CONNECTED has ever succeeded
	exhausted bool
}

// New builds a Transport from a parsed Config. If rnd is nil and
// cfg.Randomize is true, the broker list is left in its original order
// (deterministic construction requires an explicit Rand). A nil logger
// falls back to DiscardLogger.
func New(cfg Config, rnd Rand, logger Logger) *Transport {
	if logger == nil {
		logger = DiscardLogger
	}
	brokers := append([]Broker(nil), cfg.Brokers...)
	if cfg.Randomize && rnd != nil {
		rnd.Shuffle(len(brokers), func(i, j int) { brokers[i], brokers[j] = brokers[j], brokers[i] })
	}
	return &Transport{
		cfg:      cfg,
		brokers:  brokers,
		rand:     rnd,
		logger:   logger,
		clientID: idgen.RandomLen(clientIDLen),
		backoff: &backoff.Backoff{
			Min:    time.Duration(cfg.InitialReconnectDelayMS) * time.Millisecond,
			Max:    time.Duration(cfg.MaxReconnectDelayMS) * time.Millisecond,
			Factor: cfg.BackOffMultiplier,
		},
	}
}

// FromURI parses uri and builds a Transport in one step.
func FromURI(uri string, rnd Rand, logger Logger) (*Transport, error) {
	cfg, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return New(cfg, rnd, logger), nil
}

// ClientID returns the random identifier this Transport mints for brokers
// that expect a client id component on the CONNECT host header to tell
// reconnects of the same logical client apart (e.g. "vhost#clientId"). It is
// stable for the Transport's lifetime.
func (t *Transport) ClientID() string {
	return t.clientID
}

// Next returns the next broker to try and how long to wait before trying
// it. Once the configured attempt limit has been reached (or if the broker
// list is empty), it returns a NoMoreBrokers error instead, and keeps doing
// so until Succeeded is called.
func (t *Transport) Next() (Broker, time.Duration, error) {
	if t.exhausted || len(t.brokers) == 0 {
		return Broker{}, 0, protoerr.New(protoerr.NoMoreBrokers, "failover: no more brokers to try")
	}
	if limit := t.effectiveLimit(); limit >= 0 && t.attempts >= limit {
		t.exhausted = true
		t.logger.Errorf("failover: exhausted %d reconnect attempts", limit)
		return Broker{}, 0, protoerr.New(protoerr.NoMoreBrokers, "failover: exhausted %d reconnect attempts", limit)
	}

	broker := t.selectBroker()
	delay := t.computeDelay()

	t.attempts++
	t.advance()

	t.logger.Debugf("failover: next broker %s after %s (attempt %d)", broker, delay, t.attempts)
	return broker, delay, nil
}

// Succeeded tells the transport a CONNECTED was received, so the attempt
// counter and backoff state reset and StartupMaxReconnectAttempts no
// longer applies (§4.6, step 5).
func (t *Transport) Succeeded() {
	t.logger.Debugf("failover: connected, resetting attempt counter")
	t.pastFirst = true
	t.attempts = 0
	t.pass = 0
	t.index = 0
	t.exhausted = false
	t.backoff.Reset()
}

func (t *Transport) effectiveLimit() int {
	if !t.pastFirst && t.cfg.StartupMaxReconnectAttempts > 0 {
		return t.cfg.StartupMaxReconnectAttempts
	}
	return t.cfg.MaxReconnectAttempts
}

func (t *Transport) selectBroker() Broker {
	n := len(t.brokers)
	if t.cfg.PriorityBackup && n > 1 {
		// The primary (index 0) is retried every pass; secondaries cycle.
		if t.index == 0 {
			return t.brokers[0]
		}
		secondary := 1 + (t.index-1)%(n-1)
		return t.brokers[secondary]
	}
	return t.brokers[t.index%n]
}

func (t *Transport) advance() {
	n := len(t.brokers)
	t.index++
	if t.index >= n {
		t.index = 0
		t.pass++
	}
}

func (t *Transport) computeDelay() time.Duration {
	// The first attempt of the whole sequence is always immediate.
	if t.attempts == 0 {
		return 0
	}
	var d time.Duration
	if t.cfg.UseExponentialBackOff {
		d = t.backoff.Duration()
	} else {
		d = time.Duration(t.cfg.InitialReconnectDelayMS) * time.Millisecond
	}
	if t.cfg.ReconnectDelayJitterMS > 0 && t.rand != nil {
		jitter := (t.rand.Float64()*2 - 1) * float64(t.cfg.ReconnectDelayJitterMS)
		d += time.Duration(jitter) * time.Millisecond
		if d < 0 {
			d = 0
		}
	}
	return d
}
