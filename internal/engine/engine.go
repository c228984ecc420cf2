// Package engine implements the recipe builder core: recipe CRUD,
// calculation, version history, style comparison, and the brew-day
// session state machine.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brewsmith/brewsmith/internal/calc"
	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
	"github.com/brewsmith/brewsmith/internal/style"
)

// Option configures the engine.
type Option func(*Engine)

// WithCalculator replaces the default calculator, e.g. to tune the
// non-boil hop utilization factors.
func WithCalculator(c *calc.Calculator) Option {
	return func(e *Engine) {
		e.calc = c
	}
}

// Engine manages recipes, their history, and brew-day sessions. It depends
// only on interfaces and is fully testable with in-memory stores.
type Engine struct {
	recipes  domain.RecipeStore
	versions domain.VersionStore
	sessions domain.SessionStore
	calc     *calc.Calculator
	validate *validator.Validate
	log      *logger.Logger
}

// New creates an engine with the given dependencies and options.
func New(recipes domain.RecipeStore, versions domain.VersionStore, sessions domain.SessionStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:  recipes,
		versions: versions,
		sessions: sessions,
		calc:     calc.New(),
		validate: validator.New(),
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateRecipe creates and persists a new recipe with default batch volume
// and equipment.
func (e *Engine) CreateRecipe(ctx context.Context, name string) (*domain.Recipe, error) {
	r := domain.NewRecipe(newID(), name)
	if err := e.saveRecipe(ctx, r); err != nil {
		return nil, err
	}
	e.log.Info("created recipe %s (%q)", r.ID, r.Name)
	return r, nil
}

// ListRecipes returns summaries of all recipes.
func (e *Engine) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.recipes.List(ctx)
}

// GetRecipe returns a full recipe by ID.
func (e *Engine) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// DeleteRecipe removes a recipe. Its version history is kept.
func (e *Engine) DeleteRecipe(ctx context.Context, id string) error {
	if err := e.recipes.Delete(ctx, id); err != nil {
		return err
	}
	e.log.Info("deleted recipe %s", id)
	return nil
}

// UpdateRecipe validates and persists an edited recipe. Called after every
// builder mutation; does not create a version snapshot.
func (e *Engine) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	recipe.UpdatedAt = time.Now()
	return e.saveRecipe(ctx, recipe)
}

func (e *Engine) saveRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := e.validate.Struct(recipe); err != nil {
		e.log.Warn("recipe %s failed validation: %v", recipe.ID, err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecipe, err)
	}
	if err := e.recipes.Save(ctx, recipe); err != nil {
		return fmt.Errorf("saving recipe: %w", err)
	}
	return nil
}

// Calculate derives all brewing numbers for a recipe.
func (e *Engine) Calculate(ctx context.Context, recipeID string) (*domain.Calculations, error) {
	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	calcs := e.calc.Calculate(recipe)
	return &calcs, nil
}

// CalculateRecipe derives all brewing numbers for an in-hand recipe without
// touching the store.
func (e *Engine) CalculateRecipe(recipe *domain.Recipe) domain.Calculations {
	return e.calc.Calculate(recipe)
}

// CompareStyle compares a recipe's calculated numbers against its declared
// BJCP style. Returns the style spec alongside the per-metric verdicts.
func (e *Engine) CompareStyle(ctx context.Context, recipeID string) (style.Spec, []style.MetricComparison, error) {
	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return style.Spec{}, nil, fmt.Errorf("getting recipe: %w", err)
	}
	spec, ok := style.Lookup(recipe.StyleCode)
	if !ok {
		return style.Spec{}, nil, fmt.Errorf("unknown style code %q", recipe.StyleCode)
	}
	calcs := e.calc.Calculate(recipe)
	return spec, style.Compare(spec, calcs), nil
}

// SaveVersion bumps the recipe version and appends an immutable snapshot
// with the given notes.
func (e *Engine) SaveVersion(ctx context.Context, recipeID, notes string) (*domain.RecipeVersion, error) {
	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}

	recipe.Version++
	recipe.UpdatedAt = time.Now()
	if err := e.saveRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	v := &domain.RecipeVersion{
		ID:        newID(),
		RecipeID:  recipe.ID,
		Version:   recipe.Version,
		CreatedAt: time.Now(),
		Notes:     notes,
		Snapshot:  *recipe.Clone(),
	}
	if err := e.versions.Append(ctx, v); err != nil {
		return nil, fmt.Errorf("appending version: %w", err)
	}

	e.log.Info("saved recipe %s as v%d", recipe.ID, recipe.Version)
	return v, nil
}

// ListVersions returns all snapshots of a recipe in append order.
func (e *Engine) ListVersions(ctx context.Context, recipeID string) ([]*domain.RecipeVersion, error) {
	return e.versions.ListByRecipe(ctx, recipeID)
}

// RestoreVersion replaces the current recipe with a historical snapshot.
// The pre-restore state is snapshotted first so a restore is always
// reversible.
func (e *Engine) RestoreVersion(ctx context.Context, recipeID, versionID string) (*domain.Recipe, error) {
	v, err := e.versions.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("getting version: %w", err)
	}
	if v.RecipeID != recipeID {
		return nil, fmt.Errorf("version %s belongs to a different recipe", versionID)
	}

	current, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}

	// Auto-snapshot before overwriting.
	backup := &domain.RecipeVersion{
		ID:        newID(),
		RecipeID:  current.ID,
		Version:   current.Version,
		CreatedAt: time.Now(),
		Notes:     fmt.Sprintf("auto-snapshot before restoring v%d", v.Version),
		Snapshot:  *current.Clone(),
	}
	if err := e.versions.Append(ctx, backup); err != nil {
		return nil, fmt.Errorf("appending backup version: %w", err)
	}

	restored := v.Snapshot.Clone()
	restored.Version = current.Version + 1
	restored.UpdatedAt = time.Now()
	if err := e.saveRecipe(ctx, restored); err != nil {
		return nil, err
	}

	e.log.Info("restored recipe %s to v%d (now v%d)", recipeID, v.Version, restored.Version)
	return restored, nil
}
