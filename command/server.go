// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import "stomp.im/stomp"

// Connected is the parsed content of a CONNECTED frame.
type Connected struct {
	Version   string
	Session   string
	Server    string
	HeartBeat stomp.HeartBeat
}

// ParseConnected validates and extracts a CONNECTED frame's fields.
// requested is the version set the client offered in CONNECT's
// accept-version; if the server's version header is absent, 1.0 is assumed
// (§4.2, "absence of this header... means that the server is using version
// 1.0"), and the frame is rejected if that implied version was not offered.
func ParseConnected(frame *stomp.Frame, requested []string) (Connected, error) {
	if frame.Command != stomp.CmdConnected {
		return Connected{}, stomp.ProtocolErrorf("expected CONNECTED, got %s", frame.Command)
	}

	version := frame.GetDefault(stomp.HdrVersion, stomp.V10)
	if !stomp.IsVersion(version) {
		return Connected{}, stomp.ProtocolErrorf("server negotiated unknown version %q", version)
	}
	if !contains(requested, version) {
		return Connected{}, stomp.ProtocolErrorf("server negotiated version %q, which was not offered", version)
	}

	hb := stomp.HeartBeat{}
	if raw, ok := frame.Get(stomp.HdrHeartBeat); ok {
		parsed, err := stomp.ParseHeartBeat(raw)
		if err != nil {
			return Connected{}, err
		}
		hb = parsed
	}

	return Connected{
		Version:   version,
		Session:   frame.GetDefault(stomp.HdrSession, ""),
		Server:    frame.GetDefault(stomp.HdrServer, ""),
		HeartBeat: hb,
	}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Message is the parsed content of a MESSAGE frame.
type Message struct {
	Destination  string
	MessageID    string
	Subscription string
	Ack          string // the id ACK/NACK must echo back on 1.2; empty on 1.0/1.1
	ContentType  string
	Body         []byte
	Frame        *stomp.Frame // the original frame, so Ack/Nack can be built from it
}

// ParseMessage validates and extracts a MESSAGE frame's fields.
func ParseMessage(frame *stomp.Frame) (Message, error) {
	if frame.Command != stomp.CmdMessage {
		return Message{}, stomp.ProtocolErrorf("expected MESSAGE, got %s", frame.Command)
	}
	destination, ok := frame.Get(stomp.HdrDestination)
	if !ok {
		return Message{}, stomp.ProtocolErrorf("MESSAGE frame is missing destination header")
	}
	subscription, ok := frame.Get(stomp.HdrSubscription)
	if !ok {
		return Message{}, stomp.ProtocolErrorf("MESSAGE frame is missing subscription header")
	}
	return Message{
		Destination:  destination,
		MessageID:    frame.GetDefault(stomp.HdrMessageID, ""),
		Subscription: subscription,
		Ack:          frame.GetDefault(stomp.HdrAck, ""),
		ContentType:  frame.GetDefault(stomp.HdrContentType, ""),
		Body:         frame.Body,
		Frame:        frame,
	}, nil
}

// ParseReceipt extracts the receipt-id a RECEIPT frame confirms.
func ParseReceipt(frame *stomp.Frame) (string, error) {
	if frame.Command != stomp.CmdReceipt {
		return "", stomp.ProtocolErrorf("expected RECEIPT, got %s", frame.Command)
	}
	id, ok := frame.Get(stomp.HdrReceiptID)
	if !ok {
		return "", stomp.ProtocolErrorf("RECEIPT frame is missing receipt-id header")
	}
	return id, nil
}

// ServerError is the parsed content of an ERROR frame, and also implements
// error so callers can return it directly. ReceiptID is set when the server
// identified which request caused the error (§4.2: "MAY... contain a
// receipt-id header if the ERROR frame is in response to a frame that
// requested a receipt").
type ServerError struct {
	Message     string
	ContentType string
	Body        []byte
	ReceiptID   string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server sent ERROR frame"
	}
	return "server error: " + e.Message
}

// ParseError extracts an ERROR frame's fields.
func ParseError(frame *stomp.Frame) (*ServerError, error) {
	if frame.Command != stomp.CmdError {
		return nil, stomp.ProtocolErrorf("expected ERROR, got %s", frame.Command)
	}
	return &ServerError{
		Message:     frame.GetDefault(stomp.HdrMessage, ""),
		ContentType: frame.GetDefault(stomp.HdrContentType, ""),
		Body:        frame.Body,
		ReceiptID:   frame.GetDefault(stomp.HdrReceiptID, ""),
	}, nil
}
