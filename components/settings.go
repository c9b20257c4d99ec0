package components

import (
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// SettingsData holds the current match settings snapshot. Exactly one
// settings entity exists per match; the snapshot is replaced wholesale.
type SettingsData struct {
	Current netconfig.MatchSettings
}

var Settings = donburi.NewComponentType[SettingsData]()
