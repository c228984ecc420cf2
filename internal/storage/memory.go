// Package storage provides recipe, version, and session persistence
// implementations. The in-memory stores back tests and the -memory flag;
// the file stores persist JSON under a data directory.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeStore  = (*MemoryRecipeStore)(nil)
	_ domain.VersionStore = (*MemoryVersionStore)(nil)
	_ domain.SessionStore = (*MemorySessionStore)(nil)
)

// MemoryRecipeStore holds recipes in memory. Safe for concurrent use.
type MemoryRecipeStore struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewMemoryRecipeStore creates an empty in-memory recipe store.
func NewMemoryRecipeStore(log *logger.Logger) *MemoryRecipeStore {
	return &MemoryRecipeStore{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
}

// Save persists a recipe. Overwrites if it already exists. The store keeps
// its own copy so later edits to the argument don't leak in.
func (s *MemoryRecipeStore) Save(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving recipe %s (name=%q, v%d)", recipe.ID, recipe.Name, recipe.Version)
	s.recipes[recipe.ID] = recipe.Clone()
	return nil
}

// Get returns a copy of the recipe by ID.
func (s *MemoryRecipeStore) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r.Clone(), nil
}

// Delete removes a recipe by ID.
func (s *MemoryRecipeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	s.log.Debug("deleted recipe %s", id)
	return nil
}

// List returns summaries of all recipes, sorted by name.
func (s *MemoryRecipeStore) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemoryVersionStore holds recipe snapshots in memory. Append-only.
type MemoryVersionStore struct {
	mu       sync.RWMutex
	versions map[string]*domain.RecipeVersion
	byRecipe map[string][]string
	log      *logger.Logger
}

// NewMemoryVersionStore creates an empty in-memory version store.
func NewMemoryVersionStore(log *logger.Logger) *MemoryVersionStore {
	return &MemoryVersionStore{
		versions: make(map[string]*domain.RecipeVersion),
		byRecipe: make(map[string][]string),
		log:      log,
	}
}

// Append adds a snapshot. Snapshots with an existing ID are rejected.
func (s *MemoryVersionStore) Append(ctx context.Context, version *domain.RecipeVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.versions[version.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.log.Debug("appending version %s (recipe=%s, v%d)", version.ID, version.RecipeID, version.Version)
	s.versions[version.ID] = version
	s.byRecipe[version.RecipeID] = append(s.byRecipe[version.RecipeID], version.ID)
	return nil
}

// Get returns a snapshot by ID.
func (s *MemoryVersionStore) Get(ctx context.Context, id string) (*domain.RecipeVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.versions[id]
	if !ok {
		s.log.Debug("version not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// ListByRecipe returns all snapshots of a recipe in append order.
func (s *MemoryVersionStore) ListByRecipe(ctx context.Context, recipeID string) ([]*domain.RecipeVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byRecipe[recipeID]
	out := make([]*domain.RecipeVersion, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.versions[id])
	}
	s.log.Debug("listing versions for recipe %s, count=%d", recipeID, len(out))
	return out, nil
}

// MemorySessionStore is an in-memory brew session store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.BrewSession
	log      *logger.Logger
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore(log *logger.Logger) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*domain.BrewSession),
		log:      log,
	}
}

// Save persists a session. Overwrites if it already exists.
func (s *MemorySessionStore) Save(ctx context.Context, session *domain.BrewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session %s (recipe=%s, status=%s)", session.ID, session.RecipeID, session.Status)
	s.sessions[session.ID] = session
	return nil
}

// Load retrieves a session by ID.
func (s *MemorySessionStore) Load(ctx context.Context, id string) (*domain.BrewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		s.log.Debug("session not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// Delete removes a session by ID.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	s.log.Debug("deleted session %s", id)
	return nil
}

// ListActive returns all sessions with active or paused status.
func (s *MemorySessionStore) ListActive(ctx context.Context) ([]*domain.BrewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.BrewSession
	for _, sess := range s.sessions {
		if sess.Status == domain.SessionActive || sess.Status == domain.SessionPaused {
			out = append(out, sess)
		}
	}
	s.log.Debug("listing active sessions, count=%d", len(out))
	return out, nil
}
