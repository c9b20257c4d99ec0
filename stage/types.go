// Package stage provides the track catalog: stage descriptors parsed from
// TMX track files. It has no dependencies on any graphics library — pure
// data only.
package stage

// Info describes one race track.
type Info struct {
	ID          int    // stable stage id referenced by match settings
	Name        string // display name
	Scene       string // resource/scene identifier (file stem)
	DefaultLaps int
	SpawnPoints []SpawnPoint
}

// SpawnPoint is one kart grid position on the track.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
