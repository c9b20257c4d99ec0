package components

import (
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ActorHandle is an opaque reference to a spawned kart actor. The core never
// inspects it; it only hands it back to the spawner for destruction.
type ActorHandle any

// PlayerData describes one racer. Identity key is (ClientID, Source); the
// pair is unique among live players.
type PlayerData struct {
	ClientID  string
	Source    netconfig.ControlSourceID
	Character netconfig.CharacterID
	Ready     bool
	Actor     ActorHandle // nil while no actor is spawned
}

var Player = donburi.NewComponentType[PlayerData]()
