package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/slipstream-mp/pubsub"
	"github.com/automoto/slipstream-mp/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

// RemoteChannel is the online channel: publish serializes the message and
// sends it to the relay; local delivery happens only when the relay echoes
// the message back, so every participant observes the same total order.
// All shared fields are protected by mu (router callbacks run on necs
// goroutines); queued messages are dispatched only from Pump.
type RemoteChannel struct {
	mu sync.RWMutex

	bus        *pubsub.Bus
	state      ConnState
	lastError  error
	serverName string
	tickRate   int
	conn       *websocket.Conn

	queue []any // inbound messages awaiting Pump, in arrival order
}

func NewRemoteChannel() *RemoteChannel {
	return &RemoteChannel{
		bus:   pubsub.New(),
		state: StateDisconnected,
	}
}

// Connect dials the relay in a background goroutine and initiates the join
// handshake. clientID and clientName identify this process to the match.
func (c *RemoteChannel) Connect(address, version, clientID, clientName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[channel] connected to relay")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.send(messages.JoinRequest{
			Version:    version,
			ClientID:   clientID,
			ClientName: clientName,
		}); err != nil {
			c.setError(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[channel] join accepted: server=%s tickRate=%d", msg.ServerName, msg.TickRate)
		c.mu.Lock()
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoined
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[channel] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	// Lobby traffic is queued and dispatched from Pump, never from the
	// receive goroutine.
	enqueueOn[messages.MatchSnapshot](c)
	enqueueOn[messages.ClientJoined](c)
	enqueueOn[messages.PlayerJoined](c)
	enqueueOn[messages.PlayerLeft](c)
	enqueueOn[messages.CharacterChanged](c)
	enqueueOn[messages.ReadyChanged](c)
	enqueueOn[messages.SettingsChanged](c)

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[channel] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[channel] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func enqueueOn[T any](c *RemoteChannel) {
	router.On(func(_ *router.NetworkClient, msg T) {
		c.mu.Lock()
		c.queue = append(c.queue, msg)
		c.mu.Unlock()
	})
}

// Publish serializes the message and sends it to the relay. It does NOT
// dispatch locally; the message is delivered when the relay echoes it.
func (c *RemoteChannel) Publish(msg any) error {
	return c.send(msg)
}

func (c *RemoteChannel) send(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// Pump dispatches every queued inbound message in arrival order.
func (c *RemoteChannel) Pump() {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, msg := range queue {
		c.bus.Publish(msg)
	}
}

func (c *RemoteChannel) Bus() *pubsub.Bus {
	return c.bus
}

func (c *RemoteChannel) Close() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.queue = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *RemoteChannel) State() ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *RemoteChannel) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *RemoteChannel) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *RemoteChannel) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *RemoteChannel) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
