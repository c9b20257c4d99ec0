// Package network provides the message channel the match state machine runs
// over. Two implementations exist: LocalChannel for offline play and
// RemoteChannel for online play through a relay server. The state machine
// depends only on the Channel interface and never on the variant, which is
// what keeps local and online behavior identical.
package network

import "github.com/automoto/slipstream-mp/pubsub"

// Channel carries typed lobby messages. Handlers are registered on Bus();
// Pump is the single point per tick at which queued messages are dispatched.
type Channel interface {
	// Publish sends a message to every participant, including this one.
	// Delivery to local handlers is immediate (LocalChannel) or deferred
	// until the relay echoes the message back (RemoteChannel); each
	// implementation is internally consistent so ordering is well defined.
	Publish(msg any) error

	// Pump dispatches any queued inbound messages, in arrival order.
	Pump()

	// Bus is the dispatch registry message handlers subscribe on.
	Bus() *pubsub.Bus

	// Close tears the channel down. No messages are dispatched afterwards.
	Close()
}
