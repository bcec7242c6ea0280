// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf8Validator decodes text as UTF-8. It replaces ill-formed byte sequences
// with U+FFFD rather than failing, so a string is well-formed exactly when
// decoding leaves it unchanged; validUTF8 checks that. The decoder is
// reused across calls since it carries no per-call mutable state.
var utf8Validator = unicode.UTF8.NewDecoder()

// validUTF8 reports whether s is well-formed UTF-8.
func validUTF8(s string) bool {
	out, err := utf8Validator.String(s)
	return err == nil && out == s
}

// Escape renders s as it must appear on the wire for the given protocol
// version: 1.0 performs no escaping at all, 1.1 escapes \n, : and \\ (a \r
// is left untouched), and 1.2 additionally escapes \r. The command line and
// the body are never escaped -- only header names and values pass through
// Escape. On 1.1 and 1.2, s must be well-formed UTF-8.
func Escape(version, s string) (string, error) {
	switch version {
	case V10:
		return s, nil
	case V11, V12:
		if !validUTF8(s) {
			return "", newError(MalformedFrame, "header %q is not valid utf-8", s)
		}
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			switch r {
			case '\\':
				b.WriteString(`\\`)
			case '\n':
				b.WriteString(`\n`)
			case ':':
				b.WriteString(`\c`)
			case '\r':
				if version == V12 {
					b.WriteString(`\r`)
				} else {
					b.WriteRune(r)
				}
			default:
				b.WriteRune(r)
			}
		}
		return b.String(), nil
	default:
		return "", newError(ProtocolError, "unsupported version %q", version)
	}
}

// Unescape reverses Escape, decoding the wire form of a header name or
// value back into its logical form. It is the inverse operation required by
// the round-trip invariant: Unescape(version, Escape(version, s)) == s.
func Unescape(version, s string) (string, error) {
	switch version {
	case V10:
		return s, nil
	case V11, V12:
		var b strings.Builder
		b.Grow(len(s))
		runes := []rune(s)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			if r != '\\' {
				if r == '\r' {
					return "", newError(MalformedFrame, "unescaped carriage return in header")
				}
				b.WriteRune(r)
				continue
			}
			if i+1 >= len(runes) {
				return "", newError(MalformedFrame, "trailing escape character in header")
			}
			i++
			switch runes[i] {
			case 'n':
				b.WriteByte('\n')
			case 'c':
				b.WriteByte(':')
			case '\\':
				b.WriteByte('\\')
			case 'r':
				if version != V12 {
					return "", newError(MalformedFrame, "invalid escape sequence \\r for version %s", version)
				}
				b.WriteByte('\r')
			default:
				return "", newError(MalformedFrame, "invalid escape sequence \\%c", runes[i])
			}
		}
		// Escape sequences only ever decode to ASCII, so the decoded text is
		// well-formed exactly when the wire text is. The wire text is checked
		// because the []rune conversion above has already replaced any
		// ill-formed bytes with U+FFFD.
		if !validUTF8(s) {
			return "", newError(MalformedFrame, "header %q decodes to invalid utf-8", s)
		}
		return b.String(), nil
	default:
		return "", newError(ProtocolError, "unsupported version %q", version)
	}
}
