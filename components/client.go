package components

import "github.com/yohamta/donburi"

// ClientData describes one connected participant process. Clients are never
// removed for the lifetime of a match; only their players come and go.
type ClientData struct {
	ID   string // process-lifetime unique id
	Name string // display name
}

var Client = donburi.NewComponentType[ClientData]()
