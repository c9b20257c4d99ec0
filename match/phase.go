package match

import (
	"fmt"
	"log"

	"github.com/automoto/slipstream-mp/components"
	"github.com/automoto/slipstream-mp/env"
	"github.com/automoto/slipstream-mp/pubsub"
	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/automoto/slipstream-mp/stage"
)

// Scene identifiers handed to the environment. Stage scenes come from the
// stage catalog instead.
const (
	SceneLobby    = "lobby"
	SceneMainMenu = "mainmenu"
)

// Race transition fade timings, in seconds.
const (
	raceFadeOutSeconds  = 0.5
	raceFadeHoldSeconds = 0.5
)

type phaseState int

const (
	phaseBoot phaseState = iota // before the first lobby load
	phaseInLobby
	phaseInRace
	phaseToLobby
	phaseToRace
)

// PhaseController drives the lobby/race lifecycle, including the
// asynchronous scene-load handshake with the environment. Transitional
// states guard against overlapping or re-entrant load requests; loads
// themselves are not cancellable.
type PhaseController struct {
	store   *Store
	events  *pubsub.Bus
	env     env.Environment
	spawner ActorSpawner
	repo    SettingsRepo

	state       phaseState
	shownPrompt bool
	terminated  bool
}

func newPhaseController(store *Store, events *pubsub.Bus, environment env.Environment, spawner ActorSpawner, repo SettingsRepo) *PhaseController {
	return &PhaseController{
		store:   store,
		events:  events,
		env:     environment,
		spawner: spawner,
		repo:    repo,
		state:   phaseBoot,
	}
}

// Phase returns the current match phase, including the transitional
// loading states.
func (pc *PhaseController) Phase() netconfig.PhaseID {
	switch pc.state {
	case phaseInRace:
		return netconfig.PhaseRace
	case phaseToRace:
		return netconfig.PhaseLoadingRace
	case phaseBoot, phaseToLobby:
		return netconfig.PhaseLoadingLobby
	default:
		return netconfig.PhaseLobby
	}
}

// InLobby reports whether lobby-only operations (character changes) are
// currently legal.
func (pc *PhaseController) InLobby() bool {
	return pc.state == phaseInLobby
}

// GoToLobby requests the transition back to the lobby. No-op if the match
// is already in (or loading) the lobby; rejected while a race load is in
// flight.
func (pc *PhaseController) GoToLobby() {
	if pc.terminated {
		return
	}

	switch pc.state {
	case phaseInLobby, phaseToLobby:
		return
	case phaseToRace:
		log.Println("[phase] lobby request rejected: race load in flight")
		return
	}

	pc.state = phaseToLobby
	pc.env.LoadResourcesAsync(SceneLobby, pc.onLobbyReady)
}

func (pc *PhaseController) onLobbyReady() {
	if pc.terminated {
		return
	}

	pc.store.ForEachPlayer(func(p *components.PlayerData) {
		pc.spawnActorFor(p)
	})

	pc.state = phaseInLobby
	log.Println("[phase] entered lobby")
	pc.events.Publish(PhaseChanged{Phase: netconfig.PhaseLobby})

	if !pc.shownPrompt {
		pc.shownPrompt = true
		pc.events.Publish(ShowSettingsPrompt{})
	}
}

// GoToStage requests the transition into the race on the currently selected
// stage. No-op while any load is in flight or the race already runs.
func (pc *PhaseController) GoToStage() {
	if pc.terminated {
		return
	}

	switch pc.state {
	case phaseToRace, phaseInRace:
		return
	case phaseBoot, phaseToLobby:
		log.Println("[phase] race request rejected: lobby load in flight")
		return
	}

	settings := pc.store.Settings()
	info, ok := pc.repo.Stage(settings.StageID)
	if !ok {
		log.Printf("[phase] race request rejected: unknown stage %d", settings.StageID)
		return
	}

	pc.state = phaseToRace
	pc.env.FadeThenLoad(info.Scene, raceFadeOutSeconds, raceFadeHoldSeconds, func() {
		pc.onRaceReady(info)
	})
}

func (pc *PhaseController) onRaceReady(info stage.Info) {
	if pc.terminated {
		return
	}

	settings := pc.store.Settings()

	pc.state = phaseInRace
	log.Printf("[phase] race started on %q (%d laps)", info.Name, settings.Laps)

	// Everyone un-readies for the next lobby visit.
	pc.store.ForEachPlayer(func(p *components.PlayerData) {
		p.Ready = false
	})

	pc.events.Publish(RaceStarted{Settings: settings, Stage: info})
	pc.events.Publish(PhaseChanged{Phase: netconfig.PhaseRace})
}

// Quit loads the top-level menu and marks the controller terminal. The
// owning Match tears down the rest of its state.
func (pc *PhaseController) Quit() {
	if pc.terminated {
		return
	}
	pc.terminated = true

	pc.store.ForEachPlayer(pc.destroyActorFor)

	pc.env.LoadResourcesAsync(SceneMainMenu, func() {})
}

// spawnActorFor replaces the player's actor, destroying any previous handle
// first so the one-handle-per-player invariant holds.
func (pc *PhaseController) spawnActorFor(p *components.PlayerData) {
	pc.destroyActorFor(p)

	label := pc.label(p)
	handle, err := pc.spawner.SpawnActor(ActorKindKart, p.Source, p.Character, label)
	if err != nil {
		log.Printf("[phase] spawn failed for %s: %v", label, err)
		return
	}
	p.Actor = handle
}

// destroyActorFor releases the player's actor handle, if any.
func (pc *PhaseController) destroyActorFor(p *components.PlayerData) {
	if p.Actor == nil {
		return
	}
	pc.spawner.DestroyActor(p.Actor)
	p.Actor = nil
}

func (pc *PhaseController) label(p *components.PlayerData) string {
	name := p.ClientID
	if client, ok := pc.store.ClientByID(p.ClientID); ok {
		name = client.Name
	}
	return fmt.Sprintf("%s (%s)", name, p.Source)
}
