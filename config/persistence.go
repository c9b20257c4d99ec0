// Package config handles persisted user configuration: the match settings
// and display name remembered between runs.
package config

import (
	"encoding/json"
	"log"

	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/quasilyte/gdata"
)

// SavedMatchSettings is the settings data stored on disk.
type SavedMatchSettings struct {
	StageID    int    `json:"stageId"`
	Laps       int    `json:"laps"`
	MaxPlayers int    `json:"maxPlayers"`
	ClientName string `json:"clientName"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "slipstream",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadMatchSettings loads the saved settings from disk. Returns nil (not an
// error) when nothing was saved yet or persistence is unavailable.
func LoadMatchSettings() (*SavedMatchSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("match_settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var settings SavedMatchSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveMatchSettings writes the current match settings and display name to
// disk, best effort.
func SaveMatchSettings(settings netconfig.MatchSettings, clientName string) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(SavedMatchSettings{
		StageID:    settings.StageID,
		Laps:       settings.Laps,
		MaxPlayers: settings.MaxPlayers,
		ClientName: clientName,
	})
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("match_settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}
