package match

import (
	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/automoto/slipstream-mp/stage"
)

// Domain events raised on Match.Events(). These are local notifications for
// the UI and other observers; they are distinct from the wire messages that
// produced them.

// PlayerAdded fires after a player entered the store. IsLocal reports
// whether the player belongs to this process's identity.
type PlayerAdded struct {
	Player  components.PlayerData
	IsLocal bool
}

// PlayerRemoved fires after a player (and its actor, if any) was removed.
type PlayerRemoved struct {
	Player  components.PlayerData
	IsLocal bool
}

// SettingsUpdated fires after the settings snapshot was replaced.
type SettingsUpdated struct {
	Settings netconfig.MatchSettings
}

// CountdownTick fires every tick while the pre-race countdown runs.
type CountdownTick struct {
	Remaining float64 // seconds
}

// PhaseChanged fires when the match enters a new externally observable
// phase (lobby or race).
type PhaseChanged struct {
	Phase netconfig.PhaseID
}

// RaceStarted fires when race resources finish loading, carrying the
// settings snapshot and stage descriptor the race was initialized with.
type RaceStarted struct {
	Settings netconfig.MatchSettings
	Stage    stage.Info
}

// ShowSettingsPrompt fires exactly once, on the first lobby entry of the
// match, telling the UI to surface the match settings screen.
type ShowSettingsPrompt struct{}
