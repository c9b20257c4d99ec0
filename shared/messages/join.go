package messages

import "github.com/automoto/slipstream-mp/shared/netconfig"

// JoinRequest is sent by a client after connecting to request joining the
// match. ClientID is generated client-side once per process.
type JoinRequest struct {
	Version    string
	ClientID   string
	ClientName string
}

// JoinAccepted is sent by the relay when a client's join request is accepted.
// A MatchSnapshot with the current lobby state follows immediately after.
type JoinAccepted struct {
	ServerName string
	TickRate   int
}

// JoinRejected is sent by the relay when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}

// SnapshotClient is one client entry inside a MatchSnapshot.
type SnapshotClient struct {
	ClientID   string
	ClientName string
}

// SnapshotPlayer is one player entry inside a MatchSnapshot.
type SnapshotPlayer struct {
	ClientID  string
	Source    netconfig.ControlSourceID
	Character netconfig.CharacterID
	Ready     bool
}

// MatchSnapshot carries the full lobby state to a late joiner. Without it a
// new client would only see messages sent after it connected.
type MatchSnapshot struct {
	Clients  []SnapshotClient
	Players  []SnapshotPlayer
	Settings netconfig.MatchSettings
}
