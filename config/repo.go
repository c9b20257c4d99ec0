package config

import (
	"github.com/automoto/slipstream-mp/match"
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/automoto/slipstream-mp/stage"
)

// Repo wraps the stage catalog and overlays saved settings on top of the
// catalog defaults. A saved stage that no longer exists falls back to the
// catalog's default stage.
type Repo struct {
	catalog match.SettingsRepo
	saved   *SavedMatchSettings
}

// NewRepo builds the settings repository a match reads from. saved may be
// nil (fresh install or persistence unavailable).
func NewRepo(catalog match.SettingsRepo, saved *SavedMatchSettings) *Repo {
	return &Repo{catalog: catalog, saved: saved}
}

func (r *Repo) DefaultSettings() netconfig.MatchSettings {
	defaults := r.catalog.DefaultSettings()
	if r.saved == nil {
		return defaults
	}

	if _, ok := r.catalog.Stage(r.saved.StageID); ok {
		defaults.StageID = r.saved.StageID
	}
	if r.saved.Laps > 0 {
		defaults.Laps = r.saved.Laps
	}
	if r.saved.MaxPlayers > 0 {
		defaults.MaxPlayers = r.saved.MaxPlayers
	}
	return defaults
}

func (r *Repo) Stage(id int) (stage.Info, bool) {
	return r.catalog.Stage(id)
}
