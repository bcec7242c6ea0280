// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"stomp.im/stomp"
)

func TestParseConnectedDefaultsToV10WhenVersionAbsent(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdConnected, nil)
	got, err := ParseConnected(frame, []string{stomp.V10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Version != stomp.V10 {
		t.Fatalf("version = %q, want 1.0", got.Version)
	}
}

func TestParseConnectedRejectsVersionNotOffered(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdConnected, nil,
		stomp.Header{Name: stomp.HdrVersion, Value: stomp.V12},
	)
	if _, err := ParseConnected(frame, []string{stomp.V10, stomp.V11}); err == nil {
		t.Fatal("expected error for version not in requested set")
	}
}

func TestParseConnectedParsesHeartBeat(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdConnected, nil,
		stomp.Header{Name: stomp.HdrVersion, Value: stomp.V12},
		stomp.Header{Name: stomp.HdrHeartBeat, Value: "5000,10000"},
		stomp.Header{Name: stomp.HdrSession, Value: "sess-1"},
	)
	got, err := ParseConnected(frame, []string{stomp.V12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HeartBeat.Cx != 5000 || got.HeartBeat.Cy != 10000 {
		t.Fatalf("heart-beat = %+v, want {5000 10000}", got.HeartBeat)
	}
	if got.Session != "sess-1" {
		t.Fatalf("session = %q, want sess-1", got.Session)
	}
}

func TestParseConnectedRejectsWrongCommand(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdError, nil)
	if _, err := ParseConnected(frame, []string{stomp.V10}); err == nil {
		t.Fatal("expected error for wrong command")
	}
}

func TestParseMessageRequiresDestinationAndSubscription(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdMessage, []byte("body"))
	if _, err := ParseMessage(frame); err == nil {
		t.Fatal("expected error for missing destination/subscription")
	}
}

func TestParseMessage(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdMessage, []byte("body"),
		stomp.Header{Name: stomp.HdrDestination, Value: "/queue/a"},
		stomp.Header{Name: stomp.HdrSubscription, Value: "sub-0"},
		stomp.Header{Name: stomp.HdrMessageID, Value: "m-1"},
		stomp.Header{Name: stomp.HdrAck, Value: "ack-1"},
	)
	got, err := ParseMessage(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Destination != "/queue/a" || got.Subscription != "sub-0" || got.MessageID != "m-1" || got.Ack != "ack-1" {
		t.Fatalf("unexpected parse: %+v", got)
	}
	if string(got.Body) != "body" {
		t.Fatalf("body = %q, want body", got.Body)
	}
}

func TestParseReceipt(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdReceipt, nil,
		stomp.Header{Name: stomp.HdrReceiptID, Value: "r-1"},
	)
	id, err := ParseReceipt(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "r-1" {
		t.Fatalf("receipt-id = %q, want r-1", id)
	}
}

func TestParseReceiptRequiresReceiptID(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdReceipt, nil)
	if _, err := ParseReceipt(frame); err == nil {
		t.Fatal("expected error for missing receipt-id")
	}
}

func TestParseError(t *testing.T) {
	frame := stomp.NewFrame(stomp.CmdError, []byte("details"),
		stomp.Header{Name: stomp.HdrMessage, Value: "malformed frame"},
		stomp.Header{Name: stomp.HdrReceiptID, Value: "r-1"},
	)
	got, err := ParseError(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "malformed frame" || got.ReceiptID != "r-1" {
		t.Fatalf("unexpected parse: %+v", got)
	}
	if got.Error() != "server error: malformed frame" {
		t.Fatalf("Error() = %q", got.Error())
	}
}
