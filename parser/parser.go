// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package parser implements an incremental, resumable STOMP frame decoder.
//
// A Parser accepts chunks of bytes of arbitrary size via Add and produces
// whole frames via Next as soon as enough bytes have arrived. It never reads
// from or writes to anything itself -- callers own the transport and simply
// hand the parser whatever bytes arrive.
package parser // import "stomp.im/stomp/parser"

import (
	"bytes"
	"strconv"

	"stomp.im/stomp"
)

// state is the parser's position in a single frame's grammar.
type state int

const (
	stateAwaitCommand state = iota
	stateReadHeaders
	stateReadBody
	stateReadBodySized
	stateExpectNUL
)

// Parser is a resumable STOMP frame decoder. The zero value is not usable;
// construct one with New. A Parser is not safe for concurrent use, matching
// the rest of this module's single-threaded, I/O-free design.
type Parser struct {
	version          string
	heartBeatEnabled bool

	buf   []byte // unconsumed input
	state state

	command       string
	headers       []stomp.Header
	contentLength int
	haveLength    bool
	body          []byte
	bodyRemain    int

	ready []*stomp.Frame
}

// New creates a Parser that decodes frames under the given protocol
// version. The version governs header escaping rules (§4.3) and can be
// changed after CONNECTED negotiates a version with SetVersion.
func New(version string) *Parser {
	return &Parser{version: version}
}

// SetVersion updates the protocol version used to unescape headers. Callers
// should call this once CONNECTED has negotiated a version, since frames up
// to that point are parsed optimistically under the version requested.
func (p *Parser) SetVersion(version string) {
	p.version = version
}

// SetHeartBeatsEnabled controls whether a bare LF seen between frames is
// surfaced to the caller as a heart-beat frame (via Next) or silently
// discarded as inter-frame whitespace. Sessions that negotiated heart-beats
// should enable this; sessions that did not should leave it disabled.
func (p *Parser) SetHeartBeatsEnabled(enabled bool) {
	p.heartBeatEnabled = enabled
}

// Reset discards any in-progress frame and unconsumed input, returning the
// parser to its initial state. Callers must call Reset after a
// MalformedFrame error, since framing is lost and the parser cannot safely
// resynchronize on its own.
func (p *Parser) Reset() {
	p.buf = nil
	p.state = stateAwaitCommand
	p.resetFrame()
	p.ready = nil
}

func (p *Parser) resetFrame() {
	p.command = ""
	p.headers = nil
	p.contentLength = 0
	p.haveLength = false
	p.body = nil
	p.bodyRemain = 0
}

// Add feeds newly-received bytes to the parser and decodes as many frames as
// they complete. It returns the MalformedFrame error of the first frame that
// fails to decode; frames completed before that point stay queued for Next,
// which itself never reports an error.
func (p *Parser) Add(data []byte) error {
	p.buf = append(p.buf, data...)
	return p.run()
}

// CanRead reports whether at least one complete frame is buffered and ready
// to be returned by Next.
func (p *Parser) CanRead() bool {
	return len(p.ready) > 0
}

// Next returns the next complete frame, if any. The distinguished
// heart-beat frame (Frame.Empty() == true) is returned like any other frame
// when heart-beats are enabled.
func (p *Parser) Next() (*stomp.Frame, bool) {
	if len(p.ready) == 0 {
		return nil, false
	}
	f := p.ready[0]
	p.ready = p.ready[1:]
	return f, true
}

// run advances the state machine as far as the buffered input allows,
// queuing completed frames as they are found.
func (p *Parser) run() error {
	for {
		switch p.state {
		case stateAwaitCommand:
			done, err := p.awaitCommand()
			if err != nil {
				return err
			}
			if !done {
				return nil
			}
		case stateReadHeaders:
			done, err := p.readHeaders()
			if err != nil {
				return err
			}
			if !done {
				return nil
			}
		case stateReadBody:
			if !p.readBodyUntilNUL() {
				return nil
			}
			p.emit()
		case stateReadBodySized:
			if !p.readBodySized() {
				return nil
			}
		case stateExpectNUL:
			if len(p.buf) == 0 {
				return nil
			}
			if p.buf[0] != 0 {
				return p.fail("expected NUL terminator after sized body, got %q", p.buf[0])
			}
			p.buf = p.buf[1:]
			p.emit()
		}
	}
}

// awaitCommand skips leading LF/CRLF (heart-beats or inter-frame
// whitespace) and then tries to read a command line. Returns false if more
// input is needed.
func (p *Parser) awaitCommand() (bool, error) {
	for len(p.buf) > 0 {
		switch p.buf[0] {
		case '\r':
			if len(p.buf) < 2 {
				return false, nil // need to see whether \n follows
			}
			if p.buf[1] != '\n' {
				return false, p.fail("bare carriage return outside a heart-beat")
			}
			p.buf = p.buf[2:]
			p.emitHeartBeat()
			continue
		case '\n':
			p.buf = p.buf[1:]
			p.emitHeartBeat()
			continue
		}
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			return false, nil
		}
		line := p.buf[:idx]
		line = bytes.TrimSuffix(line, []byte{'\r'})
		p.buf = p.buf[idx+1:]
		p.command = string(line)
		p.state = stateReadHeaders
		return true, nil
	}
	return false, nil
}

func (p *Parser) emitHeartBeat() {
	if !p.heartBeatEnabled {
		return
	}
	p.ready = append(p.ready, stomp.NewFrame("", nil))
}

// readHeaders consumes header lines until the blank line that ends the
// header block. Returns (done, err); done is false when more input is
// needed.
func (p *Parser) readHeaders() (bool, error) {
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			return false, nil
		}
		line := p.buf[:idx]
		line = bytes.TrimSuffix(line, []byte{'\r'})
		p.buf = p.buf[idx+1:]

		if len(line) == 0 {
			// Blank line: headers are done.
			if v, ok := p.lookupContentLength(); ok {
				p.contentLength = v
				p.haveLength = true
				p.bodyRemain = v
				p.state = stateReadBodySized
			} else {
				p.state = stateReadBody
			}
			return true, nil
		}

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return false, p.fail("header line %q has no colon", line)
		}
		rawName := string(line[:colon])
		rawValue := string(line[colon+1:])
		name, err := stomp.Unescape(p.version, rawName)
		if err != nil {
			return false, p.wrapFail(err, "invalid header name %q", rawName)
		}
		value, err := stomp.Unescape(p.version, rawValue)
		if err != nil {
			return false, p.wrapFail(err, "invalid header value %q", rawValue)
		}
		p.headers = append(p.headers, stomp.Header{Name: name, Value: value})
	}
}

func (p *Parser) lookupContentLength() (int, bool) {
	for _, h := range p.headers {
		if h.Name == stomp.HdrContentLength {
			n, err := strconv.Atoi(h.Value)
			if err != nil || n < 0 {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// readBodyUntilNUL consumes bytes up to and including the first NUL, which
// terminates a frame with no content-length header.
func (p *Parser) readBodyUntilNUL() bool {
	idx := bytes.IndexByte(p.buf, 0)
	if idx < 0 {
		p.body = append(p.body, p.buf...)
		p.buf = nil
		return false
	}
	p.body = append(p.body, p.buf[:idx]...)
	p.buf = p.buf[idx+1:]
	return true
}

// readBodySized consumes exactly bodyRemain bytes, then transitions to
// expect the trailing NUL.
func (p *Parser) readBodySized() bool {
	if len(p.buf) < p.bodyRemain {
		p.body = append(p.body, p.buf...)
		p.bodyRemain -= len(p.buf)
		p.buf = nil
		return false
	}
	p.body = append(p.body, p.buf[:p.bodyRemain]...)
	p.buf = p.buf[p.bodyRemain:]
	p.bodyRemain = 0
	p.state = stateExpectNUL
	return true
}

func (p *Parser) emit() {
	f := stomp.NewFrame(p.command, p.body, p.headers...)
	p.ready = append(p.ready, f)
	p.resetFrame()
	p.state = stateAwaitCommand
}

func (p *Parser) fail(format string, args ...interface{}) error {
	return stomp.MalformedFrameError(format, args...)
}

func (p *Parser) wrapFail(cause error, format string, args ...interface{}) error {
	return stomp.WrapMalformedFrameError(cause, format, args...)
}
