// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stomp

import "stomp.im/stomp/failover"

// Config collects the knobs a caller assembles once per connection
// attempt. It mirrors the teacher's Config/StreamConfig option-struct idiom:
// a plain struct built up by functional options, then handed to a
// constructor (session.New in this module).
type Config struct {
	// Versions lists the protocol versions to offer in accept-version,
	// highest preference first. Defaults to SupportedVersions.
	Versions []string

	// Login and Passcode are sent as the CONNECT login/passcode headers
	// when non-empty.
	Login, Passcode string

	// Host is sent as the virtual host header required by 1.1+.
	Host string

	// HeartBeat is the client's requested heart-beat pair.
	HeartBeat HeartBeat

	// FailoverConfig is the broker list and reconnect policy BuildTransport
	// uses to construct a failover.Transport. Its zero value has no
	// brokers, so BuildTransport is only useful once this is set (directly
	// or via WithFailoverURI).
	FailoverConfig failover.Config

	// Logger receives diagnostic messages. Defaults to DiscardLogger. It is
	// also handed to the failover.Transport built by BuildTransport, since
	// failover.Logger matches this interface's method set structurally.
	Logger Logger
}

// BuildTransport constructs a failover.Transport from c.FailoverConfig,
// passing rnd through for broker shuffling and jitter and c.Logger for
// diagnostics. rnd may be nil, in which case the broker list is used in
// the order FailoverConfig lists it.
func (c *Config) BuildTransport(rnd failover.Rand) *failover.Transport {
	return failover.New(c.FailoverConfig, rnd, c.Logger)
}

// Option configures a Config.
type Option func(*Config)

// NewConfig builds a Config from the given options, applying defaults for
// anything left unset.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Versions: append([]string(nil), SupportedVersions...),
		Logger:   DiscardLogger,
	}
	for _, o := range opts {
		o(c)
	}
	if c.Logger == nil {
		c.Logger = DiscardLogger
	}
	return c
}

// WithVersions overrides the offered protocol versions.
func WithVersions(versions ...string) Option {
	return func(c *Config) {
		c.Versions = versions
	}
}

// WithCredentials sets the login and passcode headers sent on CONNECT.
func WithCredentials(login, passcode string) Option {
	return func(c *Config) {
		c.Login = login
		c.Passcode = passcode
	}
}

// WithHost sets the virtual host header sent on CONNECT.
func WithHost(host string) Option {
	return func(c *Config) {
		c.Host = host
	}
}

// WithHeartBeat sets the client's requested heart-beat pair.
func WithHeartBeat(cx, cy int) Option {
	return func(c *Config) {
		c.HeartBeat = HeartBeat{Cx: cx, Cy: cy}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithFailoverConfig sets the broker list and reconnect policy BuildTransport
// uses.
func WithFailoverConfig(fc failover.Config) Option {
	return func(c *Config) {
		c.FailoverConfig = fc
	}
}

// WithFailoverURI parses a failover URI (see failover.ParseURI) and sets the
// result as the Config's FailoverConfig. It panics if uri is malformed,
// since Option values have no error return; callers that need to handle a
// malformed URI gracefully should call failover.ParseURI themselves and use
// WithFailoverConfig instead.
func WithFailoverURI(uri string) Option {
	return func(c *Config) {
		fc, err := failover.ParseURI(uri)
		if err != nil {
			panic(err)
		}
		c.FailoverConfig = fc
	}
}
