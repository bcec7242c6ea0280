// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package session

import "stomp.im/stomp/command"

// Handler responds to a MESSAGE frame delivered to a subscription. It is
// entirely optional sugar: the session never calls it directly (§9's
// opaque-context rule) -- HandleMessage always hands the caller the raw
// Message and Context, and DispatchMessage is offered only for callers who
// want to store a Handler as a subscription's Context and have this
// package do the type assertion for them.
type Handler interface {
	HandleMessage(msg command.Message)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(msg command.Message)

// HandleMessage calls f(msg).
func (f HandlerFunc) HandleMessage(msg command.Message) {
	f(msg)
}
