package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeStore  = (*FileRecipeStore)(nil)
	_ domain.VersionStore = (*FileVersionStore)(nil)
	_ domain.SessionStore = (*FileSessionStore)(nil)
)

// readJSONFile loads a JSON file into dst. A missing file is not an error;
// dst is left untouched and ok is false.
func readJSONFile(path string, dst any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// writeJSONFile writes src to path atomically: marshal, write a temp file in
// the same directory, then rename over the target.
func writeJSONFile(path string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// FileRecipeStore persists recipes as a single JSON file. The whole map is
// held in memory and rewritten on every mutation; recipe files are small.
type FileRecipeStore struct {
	mu      sync.RWMutex
	path    string
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewFileRecipeStore opens (or creates) the recipe file under dir.
func NewFileRecipeStore(dir string, log *logger.Logger) (*FileRecipeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileRecipeStore{
		path:    filepath.Join(dir, "recipes.json"),
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	loaded, err := readJSONFile(s.path, &s.recipes)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Debug("loaded %d recipes from %s", len(s.recipes), s.path)
	}
	return s, nil
}

// Save persists a recipe and rewrites the backing file.
func (s *FileRecipeStore) Save(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving recipe %s (name=%q, v%d)", recipe.ID, recipe.Name, recipe.Version)
	s.recipes[recipe.ID] = recipe.Clone()
	return writeJSONFile(s.path, s.recipes)
}

// Get returns a copy of the recipe by ID.
func (s *FileRecipeStore) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.Clone(), nil
}

// Delete removes a recipe by ID and rewrites the backing file.
func (s *FileRecipeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	s.log.Debug("deleted recipe %s", id)
	return writeJSONFile(s.path, s.recipes)
}

// List returns summaries of all recipes, sorted by name.
func (s *FileRecipeStore) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FileVersionStore persists recipe snapshots as a single JSON file.
// Snapshots are stored as an ordered slice so append order survives reloads.
type FileVersionStore struct {
	mu       sync.RWMutex
	path     string
	versions []*domain.RecipeVersion
	log      *logger.Logger
}

// NewFileVersionStore opens (or creates) the version file under dir.
func NewFileVersionStore(dir string, log *logger.Logger) (*FileVersionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileVersionStore{
		path: filepath.Join(dir, "versions.json"),
		log:  log,
	}
	loaded, err := readJSONFile(s.path, &s.versions)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Debug("loaded %d versions from %s", len(s.versions), s.path)
	}
	return s, nil
}

// Append adds a snapshot and rewrites the backing file.
func (s *FileVersionStore) Append(ctx context.Context, version *domain.RecipeVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.versions {
		if v.ID == version.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.log.Debug("appending version %s (recipe=%s, v%d)", version.ID, version.RecipeID, version.Version)
	s.versions = append(s.versions, version)
	return writeJSONFile(s.path, s.versions)
}

// Get returns a snapshot by ID.
func (s *FileVersionStore) Get(ctx context.Context, id string) (*domain.RecipeVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.versions {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByRecipe returns all snapshots of a recipe in append order.
func (s *FileVersionStore) ListByRecipe(ctx context.Context, recipeID string) ([]*domain.RecipeVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.RecipeVersion
	for _, v := range s.versions {
		if v.RecipeID == recipeID {
			out = append(out, v)
		}
	}
	return out, nil
}

// FileSessionStore persists brew sessions as a single JSON file so an
// interrupted brew day survives a restart.
type FileSessionStore struct {
	mu       sync.RWMutex
	path     string
	sessions map[string]*domain.BrewSession
	log      *logger.Logger
}

// NewFileSessionStore opens (or creates) the session file under dir.
func NewFileSessionStore(dir string, log *logger.Logger) (*FileSessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileSessionStore{
		path:     filepath.Join(dir, "sessions.json"),
		sessions: make(map[string]*domain.BrewSession),
		log:      log,
	}
	loaded, err := readJSONFile(s.path, &s.sessions)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Debug("loaded %d sessions from %s", len(s.sessions), s.path)
	}
	return s, nil
}

// Save persists a session and rewrites the backing file.
func (s *FileSessionStore) Save(ctx context.Context, session *domain.BrewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session %s (recipe=%s, status=%s)", session.ID, session.RecipeID, session.Status)
	s.sessions[session.ID] = session
	return writeJSONFile(s.path, s.sessions)
}

// Load retrieves a session by ID.
func (s *FileSessionStore) Load(ctx context.Context, id string) (*domain.BrewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

// Delete removes a session by ID and rewrites the backing file.
func (s *FileSessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	return writeJSONFile(s.path, s.sessions)
}

// ListActive returns all sessions with active or paused status.
func (s *FileSessionStore) ListActive(ctx context.Context) ([]*domain.BrewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.BrewSession
	for _, sess := range s.sessions {
		if sess.Status == domain.SessionActive || sess.Status == domain.SessionPaused {
			out = append(out, sess)
		}
	}
	return out, nil
}
