// Copyright 2024 The Stomp Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package session

// Subscription is a subscribed destination as the session tracks it.
// Context is an opaque value supplied by the caller at subscribe time; the
// session never inspects or dereferences it, only hands it back on
// HandleMessage and Replay (§9).
type Subscription struct {
	Token       string
	Destination string
	Ack         string
	Headers     []Header
	Context     interface{}
}

// Header is a plain name/value pair recording one of a subscription's extra
// headers. Subscribe adds the caller's stomp.Header values to the wire frame
// and stores a copy of them here.
type Header struct {
	Name  string
	Value string
}

// subscriptionSet is the session's replay queue: an insertion-ordered list
// of active subscriptions, indexed by token for O(1) removal. It does not
// copy records out; Replay iterates the same backing list (§9, "replay as
// an iterator").
type subscriptionSet struct {
	order []*Subscription
	byTok map[string]*Subscription
}

func newSubscriptionSet() *subscriptionSet {
	return &subscriptionSet{byTok: make(map[string]*Subscription)}
}

func (set *subscriptionSet) add(sub *Subscription) {
	set.order = append(set.order, sub)
	set.byTok[sub.Token] = sub
}

func (set *subscriptionSet) removeByToken(token string) bool {
	sub, ok := set.byTok[token]
	if !ok {
		return false
	}
	delete(set.byTok, token)
	for i, s := range set.order {
		if s == sub {
			set.order = append(set.order[:i], set.order[i+1:]...)
			break
		}
	}
	return true
}

func (set *subscriptionSet) byToken(token string) (*Subscription, bool) {
	sub, ok := set.byTok[token]
	return sub, ok
}

// byDestination finds the first subscription for a destination, used on
// 1.0 where MESSAGE frames carry no subscription id and destination is the
// only correlation available.
func (set *subscriptionSet) byDestination(destination string) (*Subscription, bool) {
	for _, s := range set.order {
		if s.Destination == destination {
			return s, true
		}
	}
	return nil, false
}

// snapshot returns the subscriptions in insertion order. The caller must
// not mutate the result.
func (set *subscriptionSet) snapshot() []*Subscription {
	return set.order
}
