package match

import (
	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/automoto/slipstream-mp/stage"
)

// Actor kinds passed to the spawner.
const (
	ActorKindKart = "kart"
)

// ActorSpawner is implemented by the game shell. The core owns exactly one
// handle per live player and always destroys it explicitly before the
// player entry is removed or respawned.
type ActorSpawner interface {
	SpawnActor(kind string, source netconfig.ControlSourceID, character netconfig.CharacterID, label string) (components.ActorHandle, error)
	DestroyActor(handle components.ActorHandle)
}

// SettingsRepo supplies the default match settings and resolves stage ids
// to stage descriptors. *stage.Catalog implements it.
type SettingsRepo interface {
	DefaultSettings() netconfig.MatchSettings
	Stage(id int) (stage.Info, bool)
}
