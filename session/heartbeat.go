// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package session

import (
	"time"

	"stomp.im/stomp"
)

// timeoutSlack multiplies the negotiated receive interval to get the
// deadline after which the peer is considered timed out (§4.5's default of
// 2.0).
const timeoutSlack = 2.0

// heartbeatState tracks the negotiated heart-beat intervals and the
// timestamps of the last frame sent and received. All timestamps are
// milliseconds from the injected Clock, not wall-clock time, so tests can
// drive it deterministically.
type heartbeatState struct {
	sendInterval    int64 // ms; 0 means disabled
	receiveInterval int64 // ms; 0 means disabled

	lastSent     int64
	lastReceived int64
}

func (h *heartbeatState) negotiate(send, receive int, now int64) {
	h.sendInterval = int64(send)
	h.receiveInterval = int64(receive)
	h.lastSent = now
	h.lastReceived = now
}

func (h *heartbeatState) markSent(now int64) {
	h.lastSent = now
}

func (h *heartbeatState) markReceived(now int64) {
	h.lastReceived = now
}

func (h *heartbeatState) shouldSend(now int64) bool {
	if h.sendInterval == 0 {
		return false
	}
	return now-h.lastSent >= h.sendInterval
}

func (h *heartbeatState) peerTimedOut(now int64) bool {
	if h.receiveInterval == 0 {
		return false
	}
	deadline := int64(float64(h.receiveInterval) * timeoutSlack)
	return now-h.lastReceived > deadline
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) NowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// HeartBeatFrame returns the distinguished empty heart-beat frame. Its
// wire form is handled by Frame.Marshal, which renders it as a single LF
// (or nothing, on 1.0).
func (s *Session) HeartBeatFrame() *stomp.Frame {
	return stomp.NewFrame("", nil)
}

// MarkHeartBeatSent records that a frame (heart-beat or otherwise) was just
// sent on the wire, resetting the send-interval clock.
func (s *Session) MarkHeartBeatSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeat.markSent(s.clock.NowMillis())
}

// MarkHeartBeatReceived records that a frame (heart-beat or otherwise) was
// just received on the wire, resetting the receive-interval clock.
func (s *Session) MarkHeartBeatReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeat.markReceived(s.clock.NowMillis())
}

// ShouldSendHeartBeat reports whether enough time has elapsed since the
// last outbound frame that the transport should send an idle heart-beat
// now, per the negotiated send interval.
func (s *Session) ShouldSendHeartBeat() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heartbeat.shouldSend(s.clock.NowMillis())
}

// IsPeerTimedOut reports whether the peer has exceeded the negotiated
// receive interval (times the timeout slack) without sending anything.
func (s *Session) IsPeerTimedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heartbeat.peerTimedOut(s.clock.NowMillis())
}

// Beats returns the negotiated (send, receive) heart-beat intervals in
// milliseconds, as computed by HandleConnected.
func (s *Session) Beats() (send, receive int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heartbeat.sendInterval, s.heartbeat.receiveInterval
}
