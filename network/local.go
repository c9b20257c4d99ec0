package network

import "github.com/automoto/slipstream-mp/pubsub"

// LocalChannel is the offline channel: no transport, publish dispatches
// synchronously to local handlers. The dispatch path is otherwise identical
// to RemoteChannel's so the state machine cannot tell the two apart.
type LocalChannel struct {
	bus    *pubsub.Bus
	closed bool
}

func NewLocalChannel() *LocalChannel {
	return &LocalChannel{bus: pubsub.New()}
}

func (c *LocalChannel) Publish(msg any) error {
	if c.closed {
		return nil
	}
	c.bus.Publish(msg)
	return nil
}

// Pump is a no-op; local delivery already happened at publish time.
func (c *LocalChannel) Pump() {}

func (c *LocalChannel) Bus() *pubsub.Bus {
	return c.bus
}

func (c *LocalChannel) Close() {
	c.closed = true
}
