package domain

import "context"

// RecipeStore persists recipes. Implementations can be in-memory or backed
// by a local JSON file; the store owns schema concerns, not the core.
type RecipeStore interface {
	Save(ctx context.Context, recipe *Recipe) error
	Get(ctx context.Context, id string) (*Recipe, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]RecipeSummary, error)
}

// VersionStore persists recipe snapshots. Append-only: versions are never
// updated or deleted individually.
type VersionStore interface {
	Append(ctx context.Context, version *RecipeVersion) error
	Get(ctx context.Context, id string) (*RecipeVersion, error)
	ListByRecipe(ctx context.Context, recipeID string) ([]*RecipeVersion, error)
}

// SessionStore persists brew-day sessions.
type SessionStore interface {
	Save(ctx context.Context, session *BrewSession) error
	Load(ctx context.Context, id string) (*BrewSession, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*BrewSession, error)
}

// CommandParser converts raw user input into structured builder commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user. Implementations write to the
// terminal scrollback.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
