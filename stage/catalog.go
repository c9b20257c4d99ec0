package stage

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/slipstream-mp/shared/netconfig"
	"github.com/lafriks/go-tiled"
)

const defaultLaps = 3

// Catalog is the set of available tracks, keyed by stage id. It is the
// settings repository the match core reads from: default settings plus the
// stage id to descriptor lookup.
type Catalog struct {
	stages map[int]Info
	order  []int // stage ids sorted ascending
}

// LoadInfo parses a TMX track file and returns its stage descriptor. It
// takes an fs.FS so callers can pass embed.FS (client) or os.DirFS (relay).
func LoadInfo(fsys fs.FS, tmxPath string) (Info, error) {
	trackMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Info{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	stem := strings.TrimSuffix(filepath.Base(tmxPath), filepath.Ext(tmxPath))

	info := Info{
		ID:          trackMap.Properties.GetInt("stageId"),
		Name:        trackMap.Properties.GetString("displayName"),
		Scene:       stem,
		DefaultLaps: trackMap.Properties.GetInt("laps"),
	}
	if info.Name == "" {
		info.Name = stem
	}
	if info.DefaultLaps <= 0 {
		info.DefaultLaps = defaultLaps
	}

	// Parse kart grid positions from the KartSpawn object group.
	for _, og := range trackMap.ObjectGroups {
		if og.Name != "KartSpawn" {
			continue
		}
		for _, o := range og.Objects {
			info.SpawnPoints = append(info.SpawnPoints, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	// Sort grid positions for consistent assignment.
	sort.Slice(info.SpawnPoints, func(i, j int) bool {
		return info.SpawnPoints[i].Index < info.SpawnPoints[j].Index
	})

	return info, nil
}

// Load discovers all .tmx files in tracksDir within fsys and builds the
// catalog.
func Load(fsys fs.FS, tracksDir string) (*Catalog, error) {
	pattern := tracksDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", tracksDir)
	}

	c := &Catalog{stages: make(map[int]Info, len(matches))}

	for _, path := range matches {
		info, err := LoadInfo(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if _, dup := c.stages[info.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %d in %s", info.ID, path)
		}
		c.stages[info.ID] = info
		c.order = append(c.order, info.ID)
	}

	sort.Ints(c.order)
	return c, nil
}

// Stage resolves a stage id to its descriptor.
func (c *Catalog) Stage(id int) (Info, bool) {
	info, ok := c.stages[id]
	return info, ok
}

// Stages returns every known stage, ordered by id.
func (c *Catalog) Stages() []Info {
	out := make([]Info, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.stages[id])
	}
	return out
}

// DefaultSettings returns the settings a fresh match starts with: the lowest
// numbered stage, its default lap count, and one slot per grid position.
func (c *Catalog) DefaultSettings() netconfig.MatchSettings {
	first := c.stages[c.order[0]]

	maxPlayers := len(first.SpawnPoints)
	if maxPlayers == 0 {
		maxPlayers = 8
	}

	return netconfig.MatchSettings{
		StageID:    first.ID,
		Laps:       first.DefaultLaps,
		MaxPlayers: maxPlayers,
	}
}
