// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package failover

import (
	"net/url"
	"strconv"
	"strings"

	"stomp.im/stomp/internal/protoerr"
)

const scheme = "failover:"

// ParseURI parses a failover URI of the form
// "failover:(tcp://h1:p1,ssl://h2:p2,...)?k1=v1&k2=v2" or the short form
// "failover:tcp://h:p" (no parentheses). A query string is allowed in both
// forms, and the short form's broker part is split on commas just like the
// parenthesized list.
func ParseURI(raw string) (Config, error) {
	if !strings.HasPrefix(raw, scheme) {
		return Config{}, protoerr.New(protoerr.MalformedURI, "failover uri %q must start with %q", raw, scheme)
	}
	rest := raw[len(scheme):]

	var brokerList, query string
	switch {
	case strings.HasPrefix(rest, "("):
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return Config{}, protoerr.New(protoerr.MalformedURI, "failover uri %q has unbalanced parentheses", raw)
		}
		brokerList = rest[1:close]
		remainder := rest[close+1:]
		if remainder != "" {
			if !strings.HasPrefix(remainder, "?") {
				return Config{}, protoerr.New(protoerr.MalformedURI, "failover uri %q has trailing content after broker list", raw)
			}
			query = remainder[1:]
		}
	default:
		if idx := strings.IndexByte(rest, '?'); idx >= 0 {
			brokerList = rest[:idx]
			query = rest[idx+1:]
		} else {
			brokerList = rest
		}
	}

	if brokerList == "" {
		return Config{}, protoerr.New(protoerr.MalformedURI, "failover uri %q names no brokers", raw)
	}

	cfg := defaultConfig()
	for _, part := range strings.Split(brokerList, ",") {
		b, err := parseBroker(part)
		if err != nil {
			return Config{}, protoerr.Wrap(protoerr.MalformedURI, err, "failover uri %q", raw)
		}
		cfg.Brokers = append(cfg.Brokers, b)
	}

	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return Config{}, protoerr.Wrap(protoerr.MalformedURI, err, "failover uri %q has invalid query", raw)
		}
		if err := applyQuery(&cfg, values); err != nil {
			return Config{}, protoerr.Wrap(protoerr.MalformedURI, err, "failover uri %q", raw)
		}
	}

	return cfg, nil
}

func parseBroker(s string) (Broker, error) {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return Broker{}, protoerr.New(protoerr.MalformedURI, "broker %q is missing a scheme", s)
	}
	scheme := s[:idx]
	if scheme != "tcp" && scheme != "ssl" {
		return Broker{}, protoerr.New(protoerr.MalformedURI, "broker %q has unsupported scheme %q", s, scheme)
	}
	hostport := s[idx+3:]
	colon := strings.LastIndexByte(hostport, ':')
	if colon < 0 {
		return Broker{}, protoerr.New(protoerr.MalformedURI, "broker %q is missing a port", s)
	}
	host := hostport[:colon]
	port, err := strconv.Atoi(hostport[colon+1:])
	if err != nil || port <= 0 || port > 65535 {
		return Broker{}, protoerr.New(protoerr.MalformedURI, "broker %q has an invalid port", s)
	}
	if host == "" {
		return Broker{}, protoerr.New(protoerr.MalformedURI, "broker %q is missing a host", s)
	}
	return Broker{Scheme: scheme, Host: host, Port: port}, nil
}

func applyQuery(cfg *Config, values url.Values) error {
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		var err error
		switch strings.ToLower(key) {
		case "randomize":
			cfg.Randomize, err = strconv.ParseBool(v)
		case "prioritybackup":
			cfg.PriorityBackup, err = strconv.ParseBool(v)
		case "initialreconnectdelay":
			cfg.InitialReconnectDelayMS, err = strconv.Atoi(v)
		case "maxreconnectdelay":
			cfg.MaxReconnectDelayMS, err = strconv.Atoi(v)
		case "backoffmultiplier":
			cfg.BackOffMultiplier, err = strconv.ParseFloat(v, 64)
		case "useexponentialbackoff":
			cfg.UseExponentialBackOff, err = strconv.ParseBool(v)
		case "maxreconnectattempts":
			cfg.MaxReconnectAttempts, err = strconv.Atoi(v)
		case "startupmaxreconnectattempts":
			cfg.StartupMaxReconnectAttempts, err = strconv.Atoi(v)
		case "reconnectdelayjitter":
			cfg.ReconnectDelayJitterMS, err = strconv.Atoi(v)
		default:
			// Unknown query parameters are ignored, matching ActiveMQ's own
			// tolerant failover transport URI handling.
		}
		if err != nil {
			return protoerr.New(protoerr.MalformedURI, "failover query parameter %q=%q is invalid: %v", key, v, err)
		}
	}
	return nil
}
