// Package match implements the replicated lobby/match state machine. All
// external input — a local UI action or an inbound network packet — is
// translated into a typed message, published on the channel, and applied by
// the handlers here, so the state machine runs identically offline and
// online.
package match

import (
	"fmt"
	"log"

	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/env"
	"github.com/automoto/slipstream-mp/network"
	"github.com/automoto/slipstream-mp/pubsub"
	"github.com/automoto/slipstream-mp/shared/messages"
	"github.com/automoto/slipstream-mp/shared/netconfig"
)

// Config carries every dependency a Match needs. Nothing is looked up
// ambiently; the match context is constructed once and handed to whoever
// needs it.
type Config struct {
	Identity Identity
	Channel  network.Channel
	Spawner  ActorSpawner
	Env      env.Environment
	Repo     SettingsRepo
}

// Match is the per-process match context: state store, message handlers,
// readiness coordinator and phase controller. Drive it with Update once
// per tick.
type Match struct {
	identity Identity
	channel  network.Channel
	environ  env.Environment
	events   *pubsub.Bus
	store    *Store

	readiness *Readiness
	phase     *PhaseController

	subs       []*pubsub.Subscription
	terminated bool
}

func New(cfg Config) (*Match, error) {
	if cfg.Channel == nil {
		return nil, fmt.Errorf("match: nil channel")
	}
	if cfg.Spawner == nil {
		return nil, fmt.Errorf("match: nil spawner")
	}
	if cfg.Env == nil {
		return nil, fmt.Errorf("match: nil environment")
	}
	if cfg.Repo == nil {
		return nil, fmt.Errorf("match: nil settings repo")
	}

	m := &Match{
		identity: cfg.Identity,
		channel:  cfg.Channel,
		environ:  cfg.Env,
		events:   pubsub.New(),
		store:    NewStore(),
	}

	m.store.SetSettings(cfg.Repo.DefaultSettings())
	m.phase = newPhaseController(m.store, m.events, cfg.Env, cfg.Spawner, cfg.Repo)
	m.readiness = newReadiness(m.store, m.events, m.phase.GoToStage)

	bus := m.channel.Bus()
	m.subs = []*pubsub.Subscription{
		pubsub.Subscribe(bus, m.handleClientJoined),
		pubsub.Subscribe(bus, m.handlePlayerJoined),
		pubsub.Subscribe(bus, m.handlePlayerLeft),
		pubsub.Subscribe(bus, m.handleCharacterChanged),
		pubsub.Subscribe(bus, m.handleReadyChanged),
		pubsub.Subscribe(bus, m.handleSettingsChanged),
		pubsub.Subscribe(bus, m.handleSnapshot),
	}

	return m, nil
}

// Start announces this client to the match and requests the first lobby
// load. Online callers should wait until the channel has joined the relay.
func (m *Match) Start() {
	m.publish(messages.ClientJoined{
		ClientID:   m.identity.ClientID,
		ClientName: m.identity.Name,
	})
	m.phase.GoToLobby()
}

// Update is the tick: pump the channel so queued messages run through the
// handlers, advance the countdown, then let the environment deliver any
// completed load callbacks.
func (m *Match) Update(dt float64) {
	if m.terminated {
		return
	}

	m.channel.Pump()
	m.readiness.Update(dt)
	m.environ.Update(dt)
}

// Accessors.

func (m *Match) Identity() Identity                { return m.identity }
func (m *Match) Events() *pubsub.Bus               { return m.events }
func (m *Match) Store() *Store                     { return m.store }
func (m *Match) Phase() netconfig.PhaseID          { return m.phase.Phase() }
func (m *Match) Readiness() *Readiness             { return m.readiness }
func (m *Match) Settings() netconfig.MatchSettings { return m.store.Settings() }

// Commands accepted from the UI/input layer. Each one only publishes a
// message; state changes happen when the message comes back through the
// channel, exactly as they would for a remote participant.

func (m *Match) RequestPlayerJoin(source netconfig.ControlSourceID, character netconfig.CharacterID) {
	m.publish(messages.PlayerJoined{
		ClientID:  m.identity.ClientID,
		Source:    source,
		Character: character,
	})
}

func (m *Match) RequestPlayerLeave(source netconfig.ControlSourceID) {
	m.publish(messages.PlayerLeft{
		ClientID: m.identity.ClientID,
		Source:   source,
	})
}

func (m *Match) RequestCharacterChange(source netconfig.ControlSourceID, character netconfig.CharacterID) {
	m.publish(messages.CharacterChanged{
		ClientID:  m.identity.ClientID,
		Source:    source,
		Character: character,
	})
}

func (m *Match) RequestReady(source netconfig.ControlSourceID, ready bool) {
	m.publish(messages.ReadyChanged{
		ClientID: m.identity.ClientID,
		Source:   source,
		Ready:    ready,
	})
}

func (m *Match) RequestSettingsChange(settings netconfig.MatchSettings) {
	m.publish(messages.SettingsChanged{Settings: settings})
}

func (m *Match) RequestGoToStage() {
	m.phase.GoToStage()
}

func (m *Match) RequestGoToLobby() {
	m.phase.GoToLobby()
}

// QuitMatch loads the main menu and tears down the match state. Terminal:
// no further messages are processed afterwards.
func (m *Match) QuitMatch() {
	if m.terminated {
		return
	}
	m.terminated = true

	m.phase.Quit()

	for _, sub := range m.subs {
		sub.Close()
	}
	m.subs = nil

	m.channel.Close()
	log.Println("[match] quit")
}

// Message handlers. These are the sole mutators of the store and always run
// from the channel's single dispatch point.

func (m *Match) handleClientJoined(msg messages.ClientJoined) {
	if !m.store.AddClient(msg.ClientID, msg.ClientName) {
		log.Printf("[match] duplicate client %s ignored", msg.ClientID)
		return
	}
	log.Printf("[match] client %q joined", msg.ClientName)
}

func (m *Match) handlePlayerJoined(msg messages.PlayerJoined) {
	added := m.store.AddPlayer(components.PlayerData{
		ClientID:  msg.ClientID,
		Source:    msg.Source,
		Character: msg.Character,
	})
	if !added {
		// Benign race between transport and state.
		return
	}

	if m.phase.InLobby() {
		m.store.UpdatePlayer(msg.ClientID, msg.Source, m.phase.spawnActorFor)
	}

	// A new player can never be ready, so any running countdown stops.
	m.readiness.Refresh()

	player, _ := m.store.Player(msg.ClientID, msg.Source)
	m.events.Publish(PlayerAdded{
		Player:  player,
		IsLocal: m.isLocal(msg.ClientID),
	})
}

func (m *Match) handlePlayerLeft(msg messages.PlayerLeft) {
	if _, ok := m.store.Player(msg.ClientID, msg.Source); !ok {
		return
	}

	m.store.UpdatePlayer(msg.ClientID, msg.Source, m.phase.destroyActorFor)

	removed, _ := m.store.RemovePlayer(msg.ClientID, msg.Source)
	m.readiness.Refresh()

	m.events.Publish(PlayerRemoved{
		Player:  removed,
		IsLocal: m.isLocal(msg.ClientID),
	})
}

func (m *Match) handleCharacterChanged(msg messages.CharacterChanged) {
	if !m.phase.InLobby() {
		log.Printf("[match] character change for %s/%s rejected outside lobby", msg.ClientID, msg.Source)
		return
	}

	m.store.UpdatePlayer(msg.ClientID, msg.Source, func(p *components.PlayerData) {
		p.Character = msg.Character
		m.phase.spawnActorFor(p)
	})
}

func (m *Match) handleReadyChanged(msg messages.ReadyChanged) {
	if !m.store.UpdatePlayer(msg.ClientID, msg.Source, func(p *components.PlayerData) {
		p.Ready = msg.Ready
	}) {
		return
	}

	m.readiness.Refresh()
}

func (m *Match) handleSettingsChanged(msg messages.SettingsChanged) {
	m.store.SetSettings(msg.Settings)
	m.events.Publish(SettingsUpdated{Settings: msg.Settings})
}

// handleSnapshot applies the full lobby state a late joiner receives from
// the relay right after its join is accepted.
func (m *Match) handleSnapshot(msg messages.MatchSnapshot) {
	log.Printf("[match] applying snapshot: %d clients, %d players", len(msg.Clients), len(msg.Players))

	for _, c := range msg.Clients {
		m.store.AddClient(c.ClientID, c.ClientName)
	}

	for _, p := range msg.Players {
		added := m.store.AddPlayer(components.PlayerData{
			ClientID:  p.ClientID,
			Source:    p.Source,
			Character: p.Character,
			Ready:     p.Ready,
		})
		if !added {
			continue
		}
		if m.phase.InLobby() {
			m.store.UpdatePlayer(p.ClientID, p.Source, m.phase.spawnActorFor)
		}
		player, _ := m.store.Player(p.ClientID, p.Source)
		m.events.Publish(PlayerAdded{
			Player:  player,
			IsLocal: m.isLocal(p.ClientID),
		})
	}

	m.store.SetSettings(msg.Settings)
	m.events.Publish(SettingsUpdated{Settings: msg.Settings})

	m.readiness.Refresh()
}

func (m *Match) isLocal(clientID string) bool {
	return clientID == m.identity.ClientID
}

func (m *Match) publish(msg any) {
	if err := m.channel.Publish(msg); err != nil {
		log.Printf("[match] publish %T failed: %v", msg, err)
	}
}
