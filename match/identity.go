package match

import "github.com/google/uuid"

// Identity is this process's stable identity for the lifetime of the run.
// Comparing a message's client id against it is the only way the core
// distinguishes "mine" from "a remote player's", and only for event routing.
type Identity struct {
	ClientID string
	Name     string
}

// NewIdentity generates a fresh process identity.
func NewIdentity(name string) Identity {
	return Identity{
		ClientID: uuid.NewString(),
		Name:     name,
	}
}
