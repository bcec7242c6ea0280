// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import (
	"bytes"
	"fmt"
	"strconv"
)

// Header is a single name/value pair as it appears on the wire. Frame keeps
// headers as an ordered slice of Header rather than a map so that repeated
// headers and wire order survive a decode/encode round trip, per the
// protocol's rule that the first occurrence of a repeated header is
// authoritative while every occurrence must still be re-sent.
type Header struct {
	Name  string
	Value string
}

// Frame is a STOMP frame: a command, its headers in wire order, and a body.
// A Frame is a plain value; nothing about it is safe or unsafe to share
// across goroutines beyond the normal rules for slices and strings.
type Frame struct {
	Command string
	headers []Header
	Body    []byte
}

// NewFrame builds a Frame from a command and a list of headers given in the
// order they should render on the wire. Pass headers as alternating
// name/value pairs is not supported on purpose -- use AddHeader to append
// duplicates, since Go's map literal syntax would silently drop them.
func NewFrame(command string, body []byte, headers ...Header) *Frame {
	f := &Frame{Command: command, Body: body}
	f.headers = append(f.headers, headers...)
	return f
}

// Empty reports whether f is the distinguished heart-beat frame: no command,
// no headers, no body.
func (f *Frame) Empty() bool {
	return f.Command == "" && len(f.headers) == 0 && len(f.Body) == 0
}

// AddHeader appends a header, preserving any existing header of the same
// name (both are kept and both are sent; Get always resolves to the first).
func (f *Frame) AddHeader(name, value string) {
	f.headers = append(f.headers, Header{Name: name, Value: value})
}

// SetHeader replaces every existing occurrence of name with a single
// occurrence holding value, appending it if name was not present.
func (f *Frame) SetHeader(name, value string) {
	for i := range f.headers {
		if f.headers[i].Name == name {
			f.headers[i].Value = value
			f.removeAllBut(name, i)
			return
		}
	}
	f.AddHeader(name, value)
}

func (f *Frame) removeAllBut(name string, keep int) {
	out := f.headers[:0]
	for i, h := range f.headers {
		if h.Name == name && i != keep {
			continue
		}
		out = append(out, h)
	}
	f.headers = out
}

// Get returns the value of the first occurrence of name and whether it was
// present. The first occurrence is authoritative per the protocol spec.
func (f *Frame) Get(name string) (string, bool) {
	for _, h := range f.headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// GetDefault is like Get but returns def when name is absent.
func (f *Frame) GetDefault(name, def string) string {
	if v, ok := f.Get(name); ok {
		return v
	}
	return def
}

// Headers returns the headers in wire order, including duplicates. The
// returned slice must not be mutated by the caller.
func (f *Frame) Headers() []Header {
	return f.headers
}

// Equal reports whether two frames are structurally identical: same
// command, same headers in the same order, same body.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil {
		return false
	}
	if f.Command != other.Command {
		return false
	}
	if !bytes.Equal(f.Body, other.Body) {
		return false
	}
	if len(f.headers) != len(other.headers) {
		return false
	}
	for i, h := range f.headers {
		if h != other.headers[i] {
			return false
		}
	}
	return true
}

// Marshal renders the wire-level representation of f for the given
// protocol version, escaping header names and values per version's rules
// (see Escape). If requireContentLength is true and the body is non-empty
// (or the command is SEND, MESSAGE or ERROR, which always carry one), a
// content-length header reflecting the exact body length is emitted after
// the frame's own headers even if the caller never set one explicitly; an
// explicit content-length already present is trusted and left alone.
func (f *Frame) Marshal(version string, requireContentLength bool) ([]byte, error) {
	if f.Empty() {
		if version == V10 {
			return nil, nil
		}
		return []byte{lineDelimiter}, nil
	}

	var buf bytes.Buffer
	buf.WriteString(f.Command)
	buf.WriteByte(lineDelimiter)

	for _, h := range f.headers {
		name, err := Escape(version, h.Name)
		if err != nil {
			return nil, err
		}
		value, err := Escape(version, h.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString(name)
		buf.WriteByte(':')
		buf.WriteString(value)
		buf.WriteByte(lineDelimiter)
	}

	_, hasLength := f.Get(HdrContentLength)
	alwaysSized := f.Command == CmdSend || f.Command == CmdMessage || f.Command == CmdError
	needsLength := requireContentLength && !hasLength && (len(f.Body) > 0 || alwaysSized)
	if needsLength {
		buf.WriteString(HdrContentLength)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(len(f.Body)))
		buf.WriteByte(lineDelimiter)
	}
	buf.WriteByte(lineDelimiter)
	buf.Write(f.Body)
	buf.WriteByte(frameDelimiter)
	return buf.Bytes(), nil
}

// String renders a log-friendly, truncated one-line summary of the frame.
// It is never used for wire output -- see Marshal for that -- and is
// grounded in stompest's StompFrame.info(), which exists for exactly this
// purpose (a short diagnostic line, not a protocol artifact).
const infoBodyLength = 20

func (f *Frame) String() string {
	body := f.Body
	truncated := false
	if len(body) > infoBodyLength {
		body = body[:infoBodyLength]
		truncated = true
	}
	suffix := ""
	if truncated {
		suffix = "..."
	}
	if len(f.headers) == 0 && len(body) == 0 {
		return fmt.Sprintf("%s frame", f.Command)
	}
	return fmt.Sprintf("%s frame [headers=%v, body=%q%s]", f.Command, f.headers, body, suffix)
}
