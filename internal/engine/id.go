package engine

import "github.com/google/uuid"

// newID creates a unique ID for recipes, versions, and sessions.
func newID() string {
	return uuid.NewString()
}
