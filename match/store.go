package match

import (
	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// Store holds the per-process replicated match state: clients, players and
// the current settings snapshot. It is mutated only by message handlers, all
// of which run from a single dispatch point per tick, so no locking is
// needed.
type Store struct {
	world donburi.World
}

func NewStore() *Store {
	world := donburi.NewWorld()

	// Singleton settings entity, replaced wholesale on every change.
	entity := world.Create(components.Settings)
	components.Settings.Set(world.Entry(entity), &components.SettingsData{})

	return &Store{world: world}
}

// World exposes the underlying ECS world for read-only queries.
func (s *Store) World() donburi.World {
	return s.world
}

// AddClient inserts a client. Returns false if the id is already present.
func (s *Store) AddClient(id, name string) bool {
	if _, ok := s.ClientByID(id); ok {
		return false
	}

	entity := s.world.Create(components.Client)
	components.Client.Set(s.world.Entry(entity), &components.ClientData{
		ID:   id,
		Name: name,
	})
	return true
}

// ClientByID looks up a client by id.
func (s *Store) ClientByID(id string) (components.ClientData, bool) {
	var found components.ClientData
	var ok bool
	components.Client.Each(s.world, func(entry *donburi.Entry) {
		c := components.Client.Get(entry)
		if c.ID == id {
			found = *c
			ok = true
		}
	})
	return found, ok
}

// Clients returns every known client.
func (s *Store) Clients() []components.ClientData {
	var out []components.ClientData
	components.Client.Each(s.world, func(entry *donburi.Entry) {
		out = append(out, *components.Client.Get(entry))
	})
	return out
}

// AddPlayer inserts a player. Returns false if a player with the same
// (ClientID, Source) identity already exists.
func (s *Store) AddPlayer(data components.PlayerData) bool {
	if entry := s.playerEntry(data.ClientID, data.Source); entry != nil {
		return false
	}

	entity := s.world.Create(components.Player)
	components.Player.Set(s.world.Entry(entity), &data)
	return true
}

// Player looks up a player by identity key.
func (s *Store) Player(clientID string, source netconfig.ControlSourceID) (components.PlayerData, bool) {
	entry := s.playerEntry(clientID, source)
	if entry == nil {
		return components.PlayerData{}, false
	}
	return *components.Player.Get(entry), true
}

// Players returns every live player.
func (s *Store) Players() []components.PlayerData {
	var out []components.PlayerData
	components.Player.Each(s.world, func(entry *donburi.Entry) {
		out = append(out, *components.Player.Get(entry))
	})
	return out
}

// PlayerCount returns the number of live players.
func (s *Store) PlayerCount() int {
	count := 0
	components.Player.Each(s.world, func(entry *donburi.Entry) {
		count++
	})
	return count
}

// UpdatePlayer applies fn to the player with the given identity key.
// Returns false if no such player exists.
func (s *Store) UpdatePlayer(clientID string, source netconfig.ControlSourceID, fn func(*components.PlayerData)) bool {
	entry := s.playerEntry(clientID, source)
	if entry == nil {
		return false
	}
	fn(components.Player.Get(entry))
	return true
}

// ForEachPlayer applies fn to every live player in place.
func (s *Store) ForEachPlayer(fn func(*components.PlayerData)) {
	components.Player.Each(s.world, func(entry *donburi.Entry) {
		fn(components.Player.Get(entry))
	})
}

// RemovePlayer deletes the player with the given identity key and returns its
// final state. The caller is responsible for destroying the attached actor
// before the entry disappears.
func (s *Store) RemovePlayer(clientID string, source netconfig.ControlSourceID) (components.PlayerData, bool) {
	entry := s.playerEntry(clientID, source)
	if entry == nil {
		return components.PlayerData{}, false
	}

	data := *components.Player.Get(entry)
	s.world.Remove(entry.Entity())
	return data, true
}

// AllReady reports whether every live player has its ready flag set. An
// empty player set is vacuously ready; callers must guard against it.
func (s *Store) AllReady() bool {
	all := true
	components.Player.Each(s.world, func(entry *donburi.Entry) {
		if !components.Player.Get(entry).Ready {
			all = false
		}
	})
	return all
}

// Settings returns the current settings snapshot.
func (s *Store) Settings() netconfig.MatchSettings {
	entry, ok := components.Settings.First(s.world)
	if !ok {
		return netconfig.MatchSettings{}
	}
	return components.Settings.Get(entry).Current
}

// SetSettings replaces the settings snapshot wholesale.
func (s *Store) SetSettings(settings netconfig.MatchSettings) {
	entry, ok := components.Settings.First(s.world)
	if !ok {
		return
	}
	components.Settings.Get(entry).Current = settings
}

func (s *Store) playerEntry(clientID string, source netconfig.ControlSourceID) *donburi.Entry {
	var found *donburi.Entry
	components.Player.Each(s.world, func(entry *donburi.Entry) {
		p := components.Player.Get(entry)
		if p.ClientID == clientID && p.Source == source {
			found = entry
		}
	})
	return found
}
