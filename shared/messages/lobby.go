package messages

import "github.com/automoto/slipstream-mp/shared/netconfig"

// ClientJoined announces a new participant process. Broadcast once per
// client, before any PlayerJoined from that client.
type ClientJoined struct {
	ClientID   string
	ClientName string
}

// PlayerJoined announces a new racer controlled by (ClientID, Source).
type PlayerJoined struct {
	ClientID  string
	Source    netconfig.ControlSourceID
	Character netconfig.CharacterID
}

// PlayerLeft removes the racer identified by (ClientID, Source).
type PlayerLeft struct {
	ClientID string
	Source   netconfig.ControlSourceID
}

// CharacterChanged updates a racer's kart selection. Only valid while the
// match is in the lobby phase.
type CharacterChanged struct {
	ClientID  string
	Source    netconfig.ControlSourceID
	Character netconfig.CharacterID
}

// ReadyChanged updates a racer's ready flag.
type ReadyChanged struct {
	ClientID string
	Source   netconfig.ControlSourceID
	Ready    bool
}

// SettingsChanged replaces the match-wide settings snapshot.
type SettingsChanged struct {
	Settings netconfig.MatchSettings
}
