// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package session

import (
	"stomp.im/stomp"
	"stomp.im/stomp/command"
)

// Send builds a SEND frame. If transaction is non-empty it must name a
// transaction opened with Begin and not yet closed.
func (s *Session) Send(destination string, body []byte, headers []stomp.Header, transaction, receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, err
	}
	if transaction != "" && !s.txns.has(transaction) {
		return nil, stomp.ProtocolErrorf("send: unknown transaction %q", transaction)
	}
	f, err := command.Send(command.SendArgs{
		Destination: destination,
		Body:        body,
		Transaction: transaction,
		Receipt:     receipt,
		Headers:     headers,
	})
	if err != nil {
		return nil, err
	}
	s.trackReceiptLocked(receipt)
	return f, nil
}

// Subscribe builds a SUBSCRIBE frame and records a Subscription so that
// MESSAGE frames referencing it can be delivered and so it survives a
// disconnect/reconnect cycle via Replay. On 1.1+ the session mints a token
// if id is empty (§4.4 requires one); on 1.0 the destination itself doubles
// as the token when id is empty.
func (s *Session) Subscribe(destination, id, ack string, headers []stomp.Header, ctx interface{}) (*stomp.Frame, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, "", err
	}
	token := id
	if token == "" {
		if s.version == stomp.V10 {
			token = destination
		} else {
			token = s.newID()
		}
	}
	wireID := id
	if s.version != stomp.V10 {
		wireID = token
	}
	f, err := command.Subscribe(command.SubscribeArgs{
		Version:     s.version,
		Destination: destination,
		ID:          wireID,
		Ack:         ack,
	})
	if err != nil {
		return nil, "", err
	}
	for _, h := range headers {
		f.AddHeader(h.Name, h.Value)
	}
	s.subs.add(&Subscription{
		Token:       token,
		Destination: destination,
		Ack:         f.GetDefault(stomp.HdrAck, stomp.DefaultAckMode),
		Headers:     toSessionHeaders(headers),
		Context:     ctx,
	})
	return f, token, nil
}

// Unsubscribe builds an UNSUBSCRIBE frame and removes the matching
// Subscription so it is no longer replayed.
func (s *Session) Unsubscribe(token, receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, err
	}
	sub, ok := s.subs.byToken(token)
	if !ok {
		return nil, stomp.ProtocolErrorf("unsubscribe: unknown subscription token %q", token)
	}
	id := token
	if s.version == stomp.V10 && sub.Destination == token {
		id = "" // 1.0 subscriptions minted from the destination carry no explicit id
	}
	f, err := command.Unsubscribe(command.UnsubscribeArgs{
		Version:     s.version,
		ID:          id,
		Destination: sub.Destination,
		Receipt:     receipt,
	})
	if err != nil {
		return nil, err
	}
	s.subs.removeByToken(token)
	s.trackReceiptLocked(receipt)
	return f, nil
}

// Ack builds an ACK frame for a previously-delivered MESSAGE frame.
func (s *Session) Ack(msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	return s.ackOrNack(command.Ack, msg, transaction, receipt)
}

// Nack builds a NACK frame for a previously-delivered MESSAGE frame. NACK
// does not exist on 1.0.
func (s *Session) Nack(msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	return s.ackOrNack(command.Nack, msg, transaction, receipt)
}

type ackBuilder func(version string, msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error)

func (s *Session) ackOrNack(build ackBuilder, msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, err
	}
	if transaction != "" && !s.txns.has(transaction) {
		return nil, stomp.ProtocolErrorf("ack/nack: unknown transaction %q", transaction)
	}
	f, err := build(s.version, msg, transaction, receipt)
	if err != nil {
		return nil, err
	}
	s.trackReceiptLocked(receipt)
	return f, nil
}

// Begin opens a new transaction and builds its BEGIN frame. The
// transaction id must not already be open.
func (s *Session) Begin(transaction, receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, err
	}
	if !s.txns.begin(transaction) {
		return nil, stomp.ProtocolErrorf("begin: transaction %q is already open", transaction)
	}
	f, err := command.Begin(transaction, receipt)
	if err != nil {
		s.txns.end(transaction)
		return nil, err
	}
	s.trackReceiptLocked(receipt)
	return f, nil
}

// Commit closes transaction and builds its COMMIT frame.
func (s *Session) Commit(transaction, receipt string) (*stomp.Frame, error) {
	return s.endTransaction(command.Commit, transaction, receipt)
}

// Abort closes transaction and builds its ABORT frame.
func (s *Session) Abort(transaction, receipt string) (*stomp.Frame, error) {
	return s.endTransaction(command.Abort, transaction, receipt)
}

func (s *Session) endTransaction(build func(string, string) (*stomp.Frame, error), transaction, receipt string) (*stomp.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireConnectedLocked(); err != nil {
		return nil, err
	}
	if !s.txns.has(transaction) {
		return nil, stomp.ProtocolErrorf("transaction %q is not open", transaction)
	}
	f, err := build(transaction, receipt)
	if err != nil {
		return nil, err
	}
	s.txns.end(transaction)
	s.trackReceiptLocked(receipt)
	return f, nil
}

// HandleMessage parses a received MESSAGE frame and returns it along with
// the opaque Context recorded at subscribe time, so the caller can dispatch
// it however it likes. The session does not invoke anything on the
// caller's behalf here -- see DispatchMessage for that convenience.
func (s *Session) HandleMessage(frame *stomp.Frame) (command.Message, interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireConnectedLocked(); err != nil {
		return command.Message{}, nil, err
	}
	msg, err := command.ParseMessage(frame)
	if err != nil {
		return command.Message{}, nil, err
	}
	sub, ok := s.subs.byToken(msg.Subscription)
	if !ok {
		sub, ok = s.subs.byDestination(msg.Destination)
	}
	if !ok {
		return msg, nil, stomp.ProtocolErrorf("MESSAGE for unknown subscription %q", msg.Subscription)
	}
	return msg, sub.Context, nil
}

// DispatchMessage is HandleMessage plus a type assertion: if the
// subscription's Context implements Handler, its HandleMessage method is
// called. It exists purely as sugar for callers who use the Handler
// pattern; nothing else in this package requires Context to be a Handler.
func (s *Session) DispatchMessage(frame *stomp.Frame) error {
	msg, ctx, err := s.HandleMessage(frame)
	if err != nil {
		return err
	}
	if h, ok := ctx.(Handler); ok {
		h.HandleMessage(msg)
	}
	return nil
}

// HandleReceipt parses a received RECEIPT frame and resolves the matching
// outstanding receipt.
func (s *Session) HandleReceipt(frame *stomp.Frame) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := command.ParseReceipt(frame)
	if err != nil {
		return "", err
	}
	s.receipts.resolve(id)
	return id, nil
}

// Wait reports whether receipt-id is still outstanding.
func (s *Session) Wait(receiptID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receipts.wait(receiptID)
}

// Replay returns the currently-active subscriptions in original insertion
// order, for the transport to reissue as SUBSCRIBE frames after a
// reconnect. Tokens are stable across reconnects (§4.5).
func (s *Session) Replay() []*Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subs.snapshot()
}

func toSessionHeaders(headers []stomp.Header) []Header {
	if len(headers) == 0 {
		return nil
	}
	out := make([]Header, len(headers))
	for i, h := range headers {
		out[i] = Header{Name: h.Name, Value: h.Value}
	}
	return out
}
