package match

import (
	"testing"

	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/shared/netconfig"
)

func TestStoreClientUniqueness(t *testing.T) {
	s := NewStore()

	if !s.AddClient("c1", "Alice") {
		t.Fatal("first AddClient failed")
	}
	if s.AddClient("c1", "Imposter") {
		t.Fatal("duplicate client id accepted")
	}

	c, ok := s.ClientByID("c1")
	if !ok || c.Name != "Alice" {
		t.Errorf("ClientByID = %+v, %v", c, ok)
	}
	if len(s.Clients()) != 1 {
		t.Errorf("Clients() = %d entries, want 1", len(s.Clients()))
	}
}

func TestStorePlayerIdentityKey(t *testing.T) {
	s := NewStore()

	add := func(client string, source netconfig.ControlSourceID) bool {
		return s.AddPlayer(components.PlayerData{ClientID: client, Source: source})
	}

	if !add("c1", netconfig.ControlSourceKeyboard) {
		t.Fatal("first player rejected")
	}
	if !add("c1", netconfig.ControlSourceGamepad0) {
		t.Fatal("same client, different source rejected")
	}
	if !add("c2", netconfig.ControlSourceKeyboard) {
		t.Fatal("different client, same source rejected")
	}
	if add("c1", netconfig.ControlSourceKeyboard) {
		t.Fatal("duplicate (client, source) accepted")
	}
	if got := s.PlayerCount(); got != 3 {
		t.Errorf("PlayerCount() = %d, want 3", got)
	}
}

// Replaying any join/leave sequence must leave exactly the players whose
// last message was a join.
func TestStoreJoinLeaveReplayIdentity(t *testing.T) {
	type op struct {
		join   bool
		client string
		source netconfig.ControlSourceID
	}

	ops := []op{
		{true, "c1", 0},
		{true, "c1", 1},
		{true, "c2", 0},
		{false, "c1", 0},
		{true, "c1", 0}, // rejoin after leave
		{false, "c2", 0},
		{false, "c2", 0}, // duplicate leave, no-op
		{false, "c3", 0}, // leave for unknown player, no-op
	}

	s := NewStore()
	for _, o := range ops {
		if o.join {
			s.AddPlayer(components.PlayerData{ClientID: o.client, Source: o.source})
		} else {
			s.RemovePlayer(o.client, o.source)
		}
	}

	want := map[[2]any]bool{
		{"c1", netconfig.ControlSourceID(0)}: true,
		{"c1", netconfig.ControlSourceID(1)}: true,
	}
	players := s.Players()
	if len(players) != len(want) {
		t.Fatalf("got %d players, want %d", len(players), len(want))
	}
	for _, p := range players {
		if !want[[2]any{p.ClientID, p.Source}] {
			t.Errorf("unexpected survivor %s/%s", p.ClientID, p.Source)
		}
	}
}

func TestStoreRemoveUnknownPlayerIsNoOp(t *testing.T) {
	s := NewStore()

	if _, ok := s.RemovePlayer("ghost", 0); ok {
		t.Fatal("RemovePlayer reported success for unknown player")
	}
}

func TestStoreUpdatePlayer(t *testing.T) {
	s := NewStore()
	s.AddPlayer(components.PlayerData{ClientID: "c1", Source: 0, Character: 1})

	ok := s.UpdatePlayer("c1", 0, func(p *components.PlayerData) {
		p.Character = 7
		p.Ready = true
	})
	if !ok {
		t.Fatal("UpdatePlayer failed")
	}

	p, _ := s.Player("c1", 0)
	if p.Character != 7 || !p.Ready {
		t.Errorf("player = %+v after update", p)
	}

	if s.UpdatePlayer("ghost", 0, func(p *components.PlayerData) {}) {
		t.Error("UpdatePlayer succeeded for unknown player")
	}
}

func TestStoreAllReady(t *testing.T) {
	s := NewStore()

	// Vacuously true on an empty set; callers must pair it with PlayerCount.
	if !s.AllReady() {
		t.Error("AllReady() on empty store = false")
	}

	s.AddPlayer(components.PlayerData{ClientID: "c1", Source: 0, Ready: true})
	s.AddPlayer(components.PlayerData{ClientID: "c1", Source: 1})

	if s.AllReady() {
		t.Error("AllReady() with one unready player = true")
	}

	s.UpdatePlayer("c1", 1, func(p *components.PlayerData) { p.Ready = true })
	if !s.AllReady() {
		t.Error("AllReady() with all ready = false")
	}
}

func TestStoreSettingsReplacedWholesale(t *testing.T) {
	s := NewStore()

	first := netconfig.MatchSettings{StageID: 2, Laps: 3, MaxPlayers: 8}
	second := netconfig.MatchSettings{StageID: 5, Laps: 1, MaxPlayers: 4}

	s.SetSettings(first)
	if got := s.Settings(); got != first {
		t.Fatalf("Settings() = %+v, want %+v", got, first)
	}

	s.SetSettings(second)
	if got := s.Settings(); got != second {
		t.Fatalf("Settings() = %+v, want %+v", got, second)
	}
}
