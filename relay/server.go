// Package relay implements the dedicated relay server for online matches.
// The relay does not simulate anything: it assigns every inbound lobby
// message a slot in a single total order and echoes it to all connected
// clients, including the sender. It also applies the same state handlers
// the clients run, so it can hand late joiners a full snapshot instead of
// leaving them with only the messages sent after they connected.
package relay

import (
	"log"
	"sync"

	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/match"
	"github.com/automoto/slipstream-mp/shared/messages"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// sender is the slice of router.NetworkClient the relay needs; narrowed so
// tests can drive the server without sockets.
type sender interface {
	SendMessage(msg any) error
}

type inbound struct {
	from sender
	msg  any
}

// clientGone is a control entry queued when a connection drops. It is
// handled on the loop goroutine like any other inbound message, so the
// store is never touched from the router's callback goroutines.
type clientGone struct {
	clientID string
}

// Server relays lobby messages between match clients.
type Server struct {
	name     string
	version  string
	tickRate int

	loop      *Loop
	transport *transports.WsServerTransport

	// store mirrors the lobby state for snapshot serving. It is only
	// touched from the loop goroutine.
	store *match.Store

	mu      sync.Mutex
	pending []inbound         // inbound messages awaiting the next tick
	clients map[sender]string // connection -> client id, joined clients only
}

// NewServer creates a relay. version, when non-empty, is required of
// joining clients.
func NewServer(tickRate int, name, version string) *Server {
	s := &Server{
		name:     name,
		version:  version,
		tickRate: tickRate,
		store:    match.NewStore(),
		clients:  make(map[sender]string),
	}
	s.loop = NewLoop(s, tickRate)
	s.setupRouterCallbacks()
	return s
}

// Start runs the relay loop and listens on the given port.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop shuts the relay down.
func (s *Server) Stop() {
	s.loop.Stop()
}

// ClientCount returns the number of joined clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[relay] connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[relay] %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[relay] %s disconnected", client.Id())
		}
		s.dropClient(client)
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.enqueue(client, msg)
	})

	// Lobby traffic: queued and handled on the loop goroutine so every
	// client observes one total order.
	relayOn[messages.ClientJoined](s)
	relayOn[messages.PlayerJoined](s)
	relayOn[messages.PlayerLeft](s)
	relayOn[messages.CharacterChanged](s)
	relayOn[messages.ReadyChanged](s)
	relayOn[messages.SettingsChanged](s)

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[relay] client error: %v", err)
	})
}

func relayOn[T any](s *Server) {
	router.On(func(client *router.NetworkClient, msg T) {
		s.enqueue(client, msg)
	})
}

func (s *Server) enqueue(from sender, msg any) {
	s.mu.Lock()
	s.pending = append(s.pending, inbound{from: from, msg: msg})
	s.mu.Unlock()
}

// dropClient forgets a connection and queues the cleanup of every player it
// controlled. The store belongs to the loop goroutine, so only the client id
// crosses over here.
func (s *Server) dropClient(client sender) {
	s.mu.Lock()
	clientID, joined := s.clients[client]
	delete(s.clients, client)
	s.mu.Unlock()

	if !joined {
		return
	}
	s.enqueue(nil, clientGone{clientID: clientID})
}

// processPending handles one tick's worth of inbound messages in arrival
// order. Runs on the loop goroutine only.
func (s *Server) processPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, in := range pending {
		switch msg := in.msg.(type) {
		case messages.JoinRequest:
			s.handleJoin(in.from, msg)
		case clientGone:
			s.handleClientGone(msg.clientID)
		default:
			s.apply(in.msg)
			s.broadcast(in.msg)
		}
	}
}

// handleClientGone synthesizes a PlayerLeft for every player the departed
// client controlled, so the remaining clients clean up.
func (s *Server) handleClientGone(clientID string) {
	for _, p := range s.store.Players() {
		if p.ClientID != clientID {
			continue
		}
		left := messages.PlayerLeft{ClientID: p.ClientID, Source: p.Source}
		s.apply(left)
		s.broadcast(left)
	}
}

func (s *Server) handleJoin(from sender, msg messages.JoinRequest) {
	if s.version != "" && msg.Version != s.version {
		log.Printf("[relay] rejecting %q: version %q, want %q", msg.ClientName, msg.Version, s.version)
		s.sendTo(from, messages.JoinRejected{
			Reason: "version mismatch, server requires " + s.version,
		})
		return
	}

	s.mu.Lock()
	s.clients[from] = msg.ClientID
	s.mu.Unlock()

	log.Printf("[relay] accepted %q (%s)", msg.ClientName, msg.ClientID)
	s.sendTo(from, messages.JoinAccepted{
		ServerName: s.name,
		TickRate:   s.tickRate,
	})
	s.sendTo(from, s.buildSnapshot())
}

// apply mirrors the clients' state handlers onto the relay's store so
// snapshots stay current. Phase rules (character changes only in lobby) are
// enforced client-side; the relay's mirror only feeds lobby snapshots.
func (s *Server) apply(msg any) {
	switch m := msg.(type) {
	case messages.ClientJoined:
		s.store.AddClient(m.ClientID, m.ClientName)
	case messages.PlayerJoined:
		s.store.AddPlayer(components.PlayerData{
			ClientID:  m.ClientID,
			Source:    m.Source,
			Character: m.Character,
		})
	case messages.PlayerLeft:
		s.store.RemovePlayer(m.ClientID, m.Source)
	case messages.CharacterChanged:
		s.store.UpdatePlayer(m.ClientID, m.Source, func(p *components.PlayerData) {
			p.Character = m.Character
		})
	case messages.ReadyChanged:
		s.store.UpdatePlayer(m.ClientID, m.Source, func(p *components.PlayerData) {
			p.Ready = m.Ready
		})
	case messages.SettingsChanged:
		s.store.SetSettings(m.Settings)
	}
}

func (s *Server) buildSnapshot() messages.MatchSnapshot {
	snap := messages.MatchSnapshot{Settings: s.store.Settings()}

	for _, c := range s.store.Clients() {
		snap.Clients = append(snap.Clients, messages.SnapshotClient{
			ClientID:   c.ID,
			ClientName: c.Name,
		})
	}
	for _, p := range s.store.Players() {
		snap.Players = append(snap.Players, messages.SnapshotPlayer{
			ClientID:  p.ClientID,
			Source:    p.Source,
			Character: p.Character,
			Ready:     p.Ready,
		})
	}
	return snap
}

// broadcast echoes a message to every joined client, the sender included.
func (s *Server) broadcast(msg any) {
	s.mu.Lock()
	conns := make([]sender, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		s.sendTo(conn, msg)
	}
}

func (s *Server) sendTo(conn sender, msg any) {
	if conn == nil {
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		log.Printf("[relay] send %T failed: %v", msg, err)
	}
}
