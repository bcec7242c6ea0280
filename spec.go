// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

// Protocol version tokens, as they appear in the CONNECT accept-version
// header and the CONNECTED version header.
const (
	V10 = "1.0"
	V11 = "1.1"
	V12 = "1.2"
)

// SupportedVersions lists every version this package negotiates, highest
// first so that preference order matches negotiation order.
var SupportedVersions = []string{V12, V11, V10}

// Client command names.
const (
	CmdConnect     = "CONNECT"
	CmdStomp       = "STOMP"
	CmdDisconnect  = "DISCONNECT"
	CmdSend        = "SEND"
	CmdSubscribe   = "SUBSCRIBE"
	CmdUnsubscribe = "UNSUBSCRIBE"
	CmdAck         = "ACK"
	CmdNack        = "NACK"
	CmdBegin       = "BEGIN"
	CmdCommit      = "COMMIT"
	CmdAbort       = "ABORT"
)

// Server command names.
const (
	CmdConnected = "CONNECTED"
	CmdMessage   = "MESSAGE"
	CmdReceipt   = "RECEIPT"
	CmdError     = "ERROR"
)

// Standard header names.
const (
	HdrAcceptVersion = "accept-version"
	HdrVersion       = "version"
	HdrHost          = "host"
	HdrLogin         = "login"
	HdrPasscode      = "passcode"
	HdrHeartBeat     = "heart-beat"
	HdrSession       = "session"
	HdrServer        = "server"
	HdrDestination   = "destination"
	HdrContentType   = "content-type"
	HdrContentLength = "content-length"
	HdrReceipt       = "receipt"
	HdrReceiptID     = "receipt-id"
	HdrTransaction   = "transaction"
	HdrID            = "id"
	HdrAck           = "ack"
	HdrMessage       = "message"
	HdrMessageID     = "message-id"
	HdrSubscription  = "subscription"
)

// Ack mode header values, as used on SUBSCRIBE.
const (
	AckAuto        = "auto"
	AckClient      = "client"
	AckClientIndiv = "client-individual"
	DefaultAckMode = AckAuto
)

// Wire delimiters.
const (
	lineDelimiter  = '\n'
	frameDelimiter = 0
)

// IsVersion reports whether s is one of the three versions this package
// knows about.
func IsVersion(s string) bool {
	switch s {
	case V10, V11, V12:
		return true
	}
	return false
}
