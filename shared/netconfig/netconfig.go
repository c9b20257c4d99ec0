// Package netconfig defines lightweight types shared between the game client
// and the relay server. It must have zero dependencies on any graphics
// library so the relay binary stays headless.
package netconfig

import "fmt"

// ControlSourceID identifies one local input device. A single client can run
// several players at once (splitscreen), one per control source.
type ControlSourceID int

const (
	ControlSourceKeyboard ControlSourceID = iota
	ControlSourceGamepad0
	ControlSourceGamepad1
	ControlSourceGamepad2
	ControlSourceGamepad3
)

func (c ControlSourceID) String() string {
	switch {
	case c == ControlSourceKeyboard:
		return "keyboard"
	case c >= ControlSourceGamepad0 && c <= ControlSourceGamepad3:
		return fmt.Sprintf("gamepad%d", int(c-ControlSourceGamepad0))
	default:
		return fmt.Sprintf("source%d", int(c))
	}
}

// CharacterID selects a kart/driver combination from the character roster.
type CharacterID int

// MatchSettings is the match-wide configuration snapshot. It is replaced
// wholesale on every settings change so readers never observe a torn value.
type MatchSettings struct {
	StageID    int
	Laps       int
	MaxPlayers int
}

// PhaseID represents the current phase of a match.
type PhaseID int

const (
	PhaseLobby PhaseID = iota
	PhaseRace
	PhaseLoadingLobby // lobby resources loading, transitional
	PhaseLoadingRace  // race resources loading, transitional
)

func (p PhaseID) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseRace:
		return "race"
	case PhaseLoadingLobby:
		return "loading-lobby"
	case PhaseLoadingRace:
		return "loading-race"
	default:
		return "unknown"
	}
}
