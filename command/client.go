// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"strings"

	"stomp.im/stomp"
)

// ConnectArgs carries the fields a CONNECT/STOMP frame may need. Versions
// must be non-empty and listed highest-preference-first; Host is required
// unless Versions names only 1.0.
type ConnectArgs struct {
	Versions        []string
	Login, Passcode string
	Host            string
	HeartBeat       stomp.HeartBeat

	// UseStompFrame selects the "STOMP" command name instead of "CONNECT".
	// Both names carry identical semantics (§4.1); STOMP is the name 1.1+
	// clients conventionally prefer, but servers must accept either.
	UseStompFrame bool
}

// Connect builds the client's initial CONNECT or STOMP frame. It does not
// by itself know which version will be negotiated -- that is CONNECTED's
// job -- so it validates only what the offered version set requires: a
// client offering nothing but 1.0 may omit accept-version and host, but a
// client that offers 1.1 or 1.2 must send both.
func Connect(args ConnectArgs) (*stomp.Frame, error) {
	if len(args.Versions) == 0 {
		return nil, stomp.ProtocolErrorf("connect: at least one version must be offered")
	}
	only10 := true
	for _, v := range args.Versions {
		if !stomp.IsVersion(v) {
			return nil, stomp.ProtocolErrorf("connect: unsupported version %q", v)
		}
		if v != stomp.V10 {
			only10 = false
		}
	}
	if !only10 && args.Host == "" {
		return nil, stomp.ProtocolErrorf("connect: host is required when offering version 1.1 or 1.2")
	}

	command := stomp.CmdConnect
	if args.UseStompFrame {
		command = stomp.CmdStomp
	}
	f := stomp.NewFrame(command, nil)
	if !only10 {
		f.AddHeader(stomp.HdrAcceptVersion, strings.Join(args.Versions, ","))
	}
	if args.Host != "" {
		f.AddHeader(stomp.HdrHost, args.Host)
	}
	if args.Login != "" {
		f.AddHeader(stomp.HdrLogin, args.Login)
	}
	if args.Passcode != "" {
		f.AddHeader(stomp.HdrPasscode, args.Passcode)
	}
	if hb := args.HeartBeat.String(); hb != "0,0" {
		f.AddHeader(stomp.HdrHeartBeat, hb)
	}
	return f, nil
}

// Disconnect builds a DISCONNECT frame. receipt, when non-empty, asks the
// server to confirm the disconnect with a RECEIPT frame before closing --
// the only reliable way for a client to know every prior frame was
// processed before it tears down the transport (§4.1).
func Disconnect(receipt string) *stomp.Frame {
	f := stomp.NewFrame(stomp.CmdDisconnect, nil)
	if receipt != "" {
		f.AddHeader(stomp.HdrReceipt, receipt)
	}
	return f
}

// SendArgs carries the fields of a SEND frame.
type SendArgs struct {
	Destination string
	Body        []byte
	ContentType string
	Transaction string
	Receipt     string
	Headers     []stomp.Header // additional application headers, sent as-is
}

// Send builds a SEND frame. Destination is required; everything else is
// optional.
func Send(args SendArgs) (*stomp.Frame, error) {
	if args.Destination == "" {
		return nil, stomp.ProtocolErrorf("send: destination is required")
	}
	f := stomp.NewFrame(stomp.CmdSend, args.Body)
	f.AddHeader(stomp.HdrDestination, args.Destination)
	if args.ContentType != "" {
		f.AddHeader(stomp.HdrContentType, args.ContentType)
	}
	if args.Transaction != "" {
		f.AddHeader(stomp.HdrTransaction, args.Transaction)
	}
	if args.Receipt != "" {
		f.AddHeader(stomp.HdrReceipt, args.Receipt)
	}
	for _, h := range args.Headers {
		f.AddHeader(h.Name, h.Value)
	}
	return f, nil
}

// SubscribeArgs carries the fields of a SUBSCRIBE frame.
type SubscribeArgs struct {
	Version     string
	Destination string
	ID          string // required for 1.1 and 1.2; the session mints one if the caller leaves it blank
	Ack         string // defaults to stomp.DefaultAckMode
	Receipt     string
}

// Subscribe builds a SUBSCRIBE frame. On 1.1 and 1.2, id is mandatory
// (§4.4: "the subscription's identifier, used by the server to relate
// subsequent MESSAGE and UNSUBSCRIBE frames back to it"); on 1.0, the
// destination itself doubles as the subscription's identity, and id is
// optional.
func Subscribe(args SubscribeArgs) (*stomp.Frame, error) {
	r, err := rulesFor(args.Version)
	if err != nil {
		return nil, err
	}
	if args.Destination == "" {
		return nil, stomp.ProtocolErrorf("subscribe: destination is required")
	}
	if r.subscribeNeedsID && args.ID == "" {
		return nil, stomp.ProtocolErrorf("subscribe: id is required on version %s", args.Version)
	}
	ack := args.Ack
	if ack == "" {
		ack = stomp.DefaultAckMode
	}

	f := stomp.NewFrame(stomp.CmdSubscribe, nil)
	f.AddHeader(stomp.HdrDestination, args.Destination)
	if args.ID != "" {
		f.AddHeader(stomp.HdrID, args.ID)
	}
	f.AddHeader(stomp.HdrAck, ack)
	if args.Receipt != "" {
		f.AddHeader(stomp.HdrReceipt, args.Receipt)
	}
	return f, nil
}

// UnsubscribeArgs carries the fields of an UNSUBSCRIBE frame.
type UnsubscribeArgs struct {
	Version     string
	ID          string // required for 1.1 and 1.2
	Destination string // required for 1.0 when ID is empty
	Receipt     string
}

// Unsubscribe builds an UNSUBSCRIBE frame.
func Unsubscribe(args UnsubscribeArgs) (*stomp.Frame, error) {
	r, err := rulesFor(args.Version)
	if err != nil {
		return nil, err
	}
	if r.unsubscribeNeedsID && args.ID == "" {
		return nil, stomp.ProtocolErrorf("unsubscribe: id is required on version %s", args.Version)
	}
	if args.ID == "" && args.Destination == "" {
		return nil, stomp.ProtocolErrorf("unsubscribe: either id or destination is required")
	}

	f := stomp.NewFrame(stomp.CmdUnsubscribe, nil)
	if args.ID != "" {
		f.AddHeader(stomp.HdrID, args.ID)
	}
	if args.Destination != "" {
		f.AddHeader(stomp.HdrDestination, args.Destination)
	}
	if args.Receipt != "" {
		f.AddHeader(stomp.HdrReceipt, args.Receipt)
	}
	return f, nil
}

// Begin builds a BEGIN frame. transaction is required.
func Begin(transaction, receipt string) (*stomp.Frame, error) {
	return transactionFrame(stomp.CmdBegin, transaction, receipt)
}

// Commit builds a COMMIT frame. transaction is required.
func Commit(transaction, receipt string) (*stomp.Frame, error) {
	return transactionFrame(stomp.CmdCommit, transaction, receipt)
}

// Abort builds an ABORT frame. transaction is required.
func Abort(transaction, receipt string) (*stomp.Frame, error) {
	return transactionFrame(stomp.CmdAbort, transaction, receipt)
}

func transactionFrame(command, transaction, receipt string) (*stomp.Frame, error) {
	if transaction == "" {
		return nil, stomp.ProtocolErrorf("%s: transaction is required", strings.ToLower(command))
	}
	f := stomp.NewFrame(command, nil)
	f.AddHeader(stomp.HdrTransaction, transaction)
	if receipt != "" {
		f.AddHeader(stomp.HdrReceipt, receipt)
	}
	return f, nil
}

// Ack builds an ACK frame acknowledging msg, a previously-received MESSAGE
// frame. The headers it copies from msg depend on the negotiated version
// (§4.4): 1.2 sends the MESSAGE's own ack header as ACK's id; 1.1 sends
// message-id and subscription; 1.0 sends only message-id.
func Ack(version string, msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	return ackOrNack(stomp.CmdAck, version, msg, transaction, receipt)
}

// Nack is like Ack but builds a NACK frame, telling the server the message
// was not processed successfully. NACK does not exist in 1.0 (§4.4).
func Nack(version string, msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	r, err := rulesFor(version)
	if err != nil {
		return nil, err
	}
	if !r.nackAllowed {
		return nil, stomp.ProtocolErrorf("nack: not supported on version %s", version)
	}
	return ackOrNack(stomp.CmdNack, version, msg, transaction, receipt)
}

func ackOrNack(command, version string, msg *stomp.Frame, transaction, receipt string) (*stomp.Frame, error) {
	if _, err := rulesFor(version); err != nil {
		return nil, err
	}
	f := stomp.NewFrame(command, nil)
	switch version {
	case stomp.V12:
		id, ok := msg.Get(stomp.HdrAck)
		if !ok {
			return nil, stomp.ProtocolErrorf("%s: MESSAGE frame has no ack header", strings.ToLower(command))
		}
		f.AddHeader(stomp.HdrID, id)
	case stomp.V11:
		messageID, ok := msg.Get(stomp.HdrMessageID)
		if !ok {
			return nil, stomp.ProtocolErrorf("%s: MESSAGE frame has no message-id header", strings.ToLower(command))
		}
		subscription, ok := msg.Get(stomp.HdrSubscription)
		if !ok {
			return nil, stomp.ProtocolErrorf("%s: MESSAGE frame has no subscription header", strings.ToLower(command))
		}
		f.AddHeader(stomp.HdrMessageID, messageID)
		f.AddHeader(stomp.HdrSubscription, subscription)
	default: // stomp.V10
		messageID, ok := msg.Get(stomp.HdrMessageID)
		if !ok {
			return nil, stomp.ProtocolErrorf("%s: MESSAGE frame has no message-id header", strings.ToLower(command))
		}
		f.AddHeader(stomp.HdrMessageID, messageID)
	}
	if transaction != "" {
		f.AddHeader(stomp.HdrTransaction, transaction)
	}
	if receipt != "" {
		f.AddHeader(stomp.HdrReceipt, receipt)
	}
	return f, nil
}
