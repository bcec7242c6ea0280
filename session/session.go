// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package session implements the STOMP connection lifecycle: negotiation,
// subscription tracking with replay, transactions, receipts, and heart-beat
// scheduling. It is entirely in-memory and I/O-free -- a Session produces
// and consumes *stomp.Frame values; something else owns the socket.
package session // import "stomp.im/stomp/session"

import (
	"sync"

	"stomp.im/stomp"
	"stomp.im/stomp/command"
	"stomp.im/stomp/internal/idgen"
)

// State is the session's position in the connection lifecycle (§4.5). It is
// an explicit tagged constant plus a switch in each method, not a
// per-state type hierarchy, so every transition's invariants live in one
// place.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// Session is a STOMP protocol session: client half only. A Session instance
// is owned by one transport at a time (§5); the mutex defends its fields for
// a caller that chooses to add its own locking on top, but the session
// itself makes no concurrency promises beyond that.
type Session struct {
	mu sync.RWMutex

	cfg *stomp.Config

	state State

	version   string
	sessionID string
	server    string

	heartbeat heartbeatState
	clock     Clock

	subs     *subscriptionSet
	txns     *transactionSet
	receipts *receiptSet

	newID func() string
}

// Clock is a monotonic, millisecond-precision clock, injectable so that
// heart-beat scheduling can be tested without real sleeps.
type Clock interface {
	NowMillis() int64
}

// New constructs a Session in the StateDisconnected state, configured by
// cfg. If clock is nil, a real-time clock backed by time.Now is used.
func New(cfg *stomp.Config, clock Clock) *Session {
	if cfg == nil {
		cfg = stomp.NewConfig()
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Session{
		cfg:      cfg,
		clock:    clock,
		subs:     newSubscriptionSet(),
		txns:     newTransactionSet(),
		receipts: newReceiptSet(),
		newID:    idgen.New,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version returns the negotiated protocol version, or "" before CONNECTED
// has been handled.
func (s *Session) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ID returns the server-assigned session id from CONNECTED's session
// header, or "" if the server did not send one.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Server returns the server header from CONNECTED, or "" if absent.
func (s *Session) Server() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server
}

// Connect builds the initial CONNECT/STOMP frame and transitions the
// session from StateDisconnected to StateConnecting. Calling Connect from
// any other state is a protocol error.
func (s *Session) Connect() (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDisconnected {
		return nil, stomp.ProtocolErrorf("connect: session is %s, want disconnected", s.state)
	}
	f, err := command.Connect(command.ConnectArgs{
		Versions:  s.cfg.Versions,
		Login:     s.cfg.Login,
		Passcode:  s.cfg.Passcode,
		Host:      s.cfg.Host,
		HeartBeat: s.cfg.HeartBeat,
	})
	if err != nil {
		return nil, err
	}
	s.state = StateConnecting
	return f, nil
}

// HandleConnected processes a received CONNECTED frame: it negotiates the
// protocol version and heart-beat intervals, records the session id and
// server banner, and transitions to StateConnected. Calling it from any
// state but StateConnecting is a protocol error.
func (s *Session) HandleConnected(frame *stomp.Frame) (command.Connected, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return command.Connected{}, stomp.ProtocolErrorf("CONNECTED received while session is %s, want connecting", s.state)
	}
	connected, err := command.ParseConnected(frame, s.cfg.Versions)
	if err != nil {
		return command.Connected{}, err
	}
	s.version = connected.Version
	s.sessionID = connected.Session
	s.server = connected.Server
	send, receive := s.cfg.HeartBeat.Negotiate(connected.HeartBeat)
	s.heartbeat.negotiate(send, receive, s.clock.NowMillis())
	s.state = StateConnected
	return connected, nil
}

// HandleError processes a received ERROR frame while connecting, returning
// the parsed server error and transitioning back to StateDisconnected.
func (s *Session) HandleError(frame *stomp.Frame) (*command.ServerError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	serverErr, err := command.ParseError(frame)
	if err != nil {
		return nil, err
	}
	s.state = StateDisconnected
	s.txns = newTransactionSet()
	s.receipts = newReceiptSet()
	return serverErr, nil
}

// Disconnect builds a DISCONNECT frame and transitions to
// StateDisconnecting. Calling Disconnect from any state but StateConnected
// is a protocol error.
func (s *Session) Disconnect(receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return nil, stomp.ProtocolErrorf("disconnect: session is %s, want connected", s.state)
	}
	s.state = StateDisconnecting
	return command.Disconnect(receipt), nil
}

// Closed marks the session fully disconnected, whether by a matching
// RECEIPT to a DISCONNECT or by the transport closing unexpectedly.
// Subscriptions are preserved for replay on the next connect; transactions
// and outstanding receipts are discarded (§4.5).
func (s *Session) Closed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnected
	s.txns = newTransactionSet()
	s.receipts = newReceiptSet()
}

// Flush resets the session entirely, including subscriptions, as though it
// were newly constructed. Sessions have no terminal state; Flush is how a
// caller recycles one for an unrelated connection.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnected
	s.version = ""
	s.sessionID = ""
	s.server = ""
	s.heartbeat = heartbeatState{}
	s.subs = newSubscriptionSet()
	s.txns = newTransactionSet()
	s.receipts = newReceiptSet()
}

func (s *Session) requireConnectedLocked() error {
	if s.state != StateConnected {
		return stomp.ProtocolErrorf("session is %s, want connected", s.state)
	}
	return nil
}

// trackReceiptLocked records receipt, if non-empty, in the
// outstanding-receipts set.
func (s *Session) trackReceiptLocked(receipt string) {
	if receipt == "" {
		return
	}
	s.receipts.add(receipt)
}
