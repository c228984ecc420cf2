package storage

import (
	"context"
	"testing"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

func TestMemoryRecipeStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryRecipeStore(log)
	ctx := context.Background()

	r := domain.NewRecipe("r1", "Test Ale")
	r.StyleCode = "18B"

	// Save.
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Get.
	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Test Ale" || got.StyleCode != "18B" {
		t.Fatalf("unexpected recipe back: %+v", got)
	}

	// Get nonexistent.
	if _, err := store.Get(ctx, "nope"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// List.
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "r1" {
		t.Fatalf("expected [r1], got %+v", list)
	}

	// Delete.
	if err := store.Delete(ctx, "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "r1"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "r1"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestMemoryRecipeStoreIsolatesCopies(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryRecipeStore(log)
	ctx := context.Background()

	r := domain.NewRecipe("r1", "Original")
	r.Fermentables = []domain.Fermentable{{Name: "Pale", WeightKg: 5}}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved pointer must not affect the store.
	r.Name = "Mutated"
	r.Fermentables[0].WeightKg = 99

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Original" {
		t.Fatalf("store leaked caller mutation: name=%q", got.Name)
	}
	if got.Fermentables[0].WeightKg != 5 {
		t.Fatalf("store leaked slice mutation: %v", got.Fermentables[0].WeightKg)
	}

	// Mutating a fetched copy must not affect later reads.
	got.Name = "Another mutation"
	again, _ := store.Get(ctx, "r1")
	if again.Name != "Original" {
		t.Fatalf("store leaked read copy: name=%q", again.Name)
	}
}

func TestMemoryRecipeStoreListSorted(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryRecipeStore(log)
	ctx := context.Background()

	for _, name := range []string{"Zwickel", "Amber", "Mild"} {
		if err := store.Save(ctx, domain.NewRecipe(name, name)); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Amber", "Mild", "Zwickel"}
	for i, w := range want {
		if list[i].Name != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, list[i].Name)
		}
	}
}

func TestMemoryVersionStoreAppendOnly(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryVersionStore(log)
	ctx := context.Background()

	v1 := &domain.RecipeVersion{ID: "v1", RecipeID: "r1", Version: 1, Snapshot: *domain.NewRecipe("r1", "Ale")}
	v2 := &domain.RecipeVersion{ID: "v2", RecipeID: "r1", Version: 2, Snapshot: *domain.NewRecipe("r1", "Ale")}
	other := &domain.RecipeVersion{ID: "v3", RecipeID: "r2", Version: 1, Snapshot: *domain.NewRecipe("r2", "Stout")}

	for _, v := range []*domain.RecipeVersion{v1, v2, other} {
		if err := store.Append(ctx, v); err != nil {
			t.Fatalf("append %s: %v", v.ID, err)
		}
	}

	// Duplicate IDs are rejected.
	if err := store.Append(ctx, v1); err != domain.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := store.Get(ctx, "v2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("expected version 2, got %d", got.Version)
	}

	list, err := store.ListByRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "v1" || list[1].ID != "v2" {
		t.Fatalf("expected append order [v1 v2], got %+v", list)
	}

	if _, err := store.Get(ctx, "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySessionStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemorySessionStore(log)
	ctx := context.Background()

	session := &domain.BrewSession{
		ID:          "brew-1",
		RecipeID:    "r1",
		RecipeName:  "Test Ale",
		Status:      domain.SessionActive,
		StepStates:  make(map[int]*domain.StepState),
		TimerStates: make(map[string]*domain.TimerState),
		StartedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "brew-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RecipeName != "Test Ale" {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	if _, err := store.Load(ctx, "nonexistent"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Delete(ctx, "brew-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "brew-1"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySessionStoreListActiveFilters(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemorySessionStore(log)
	ctx := context.Background()

	sessions := []*domain.BrewSession{
		{ID: "s1", Status: domain.SessionActive},
		{ID: "s2", Status: domain.SessionPaused},
		{ID: "s3", Status: domain.SessionCompleted},
		{ID: "s4", Status: domain.SessionAbandoned},
	}
	for _, s := range sessions {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save %s: %v", s.ID, err)
		}
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active/paused sessions, got %d", len(active))
	}
}

func TestSeedPopulatesEmptyStoreOnly(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	store := NewMemoryRecipeStore(log)
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 seeded recipes, got %d", len(list))
	}

	// Seeding again must not duplicate.
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected seed to be idempotent, got %d recipes", len(list))
	}

	// A store with user recipes is never seeded.
	store2 := NewMemoryRecipeStore(log)
	if err := store2.Save(ctx, domain.NewRecipe("mine", "My Recipe")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := Seed(ctx, store2); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, _ = store2.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected seed to skip non-empty store, got %d recipes", len(list))
	}
}
