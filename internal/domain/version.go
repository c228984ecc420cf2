package domain

import "time"

// RecipeVersion is an immutable snapshot of a recipe, created on explicit
// save, on restore-from-history, or automatically before an overwrite.
// Versions are append-only and never mutated after creation.
type RecipeVersion struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Notes     string    `json:"notes,omitempty"`
	Snapshot  Recipe    `json:"snapshot"`
}
