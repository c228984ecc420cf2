package timer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
	"github.com/brewsmith/brewsmith/internal/storage"
)

// collectingNotifier captures messages for assertions.
type collectingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *collectingNotifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *collectingNotifier) NotifyUrgent(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *collectingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *collectingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func setupWatcherStores(t *testing.T) (domain.SessionStore, domain.RecipeStore, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemorySessionStore(log)
	recipes := storage.NewMemoryRecipeStore(log)
	ctx := context.Background()
	if err := storage.Seed(ctx, recipes); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store, recipes, ctx
}

func runWatcherBriefly(t *testing.T, store domain.SessionStore, recipes domain.RecipeStore, notifier domain.Notifier) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	w := NewWatcher(store, recipes, notifier, log, WithWatchInterval(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	time.Sleep(200 * time.Millisecond)
	cancel()
}

func TestWatcherPausedSessionNudge(t *testing.T) {
	store, recipes, ctx := setupWatcherStores(t)
	notifier := &collectingNotifier{}

	session := &domain.BrewSession{
		ID:         "watcher-paused",
		RecipeID:   "cascade-pale-ale",
		RecipeName: "Cascade Pale Ale",
		Status:     domain.SessionPaused,
		StepStates: map[int]*domain.StepState{
			0: {Status: domain.StepActive, StartedAt: time.Now().Add(-20 * time.Minute)},
			1: {Status: domain.StepPending},
			2: {Status: domain.StepPending},
		},
		TimerStates: map[string]*domain.TimerState{},
		StartedAt:   time.Now().Add(-30 * time.Minute),
		UpdatedAt:   time.Now().Add(-10 * time.Minute), // Paused 10 min ago.
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	runWatcherBriefly(t, store, recipes, notifier)

	if notifier.count() == 0 {
		t.Fatal("expected watcher to nudge about paused session")
	}
	if !strings.Contains(notifier.last(), "paused") {
		t.Fatalf("expected a pause nudge, got %q", notifier.last())
	}
}

func TestWatcherFiredTimerAlert(t *testing.T) {
	store, recipes, ctx := setupWatcherStores(t)
	notifier := &collectingNotifier{}

	session := &domain.BrewSession{
		ID:         "watcher-fired",
		RecipeID:   "cascade-pale-ale",
		RecipeName: "Cascade Pale Ale",
		Status:     domain.SessionActive,
		StepStates: map[int]*domain.StepState{
			0: {Status: domain.StepActive, StartedAt: time.Now().Add(-65 * time.Minute)},
		},
		TimerStates: map[string]*domain.TimerState{
			"timer-step-0": {
				ID:        "timer-step-0",
				StepIndex: 0,
				Label:     "Saccharification rest",
				Duration:  60 * time.Minute,
				Remaining: 0,
				Status:    domain.TimerFired,
			},
		},
		StartedAt: time.Now().Add(-65 * time.Minute),
		UpdatedAt: time.Now(),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	runWatcherBriefly(t, store, recipes, notifier)

	if notifier.count() == 0 {
		t.Fatal("expected watcher to alert about fired timer")
	}
	if !strings.Contains(notifier.last(), "Saccharification rest") {
		t.Fatalf("expected the fired timer label, got %q", notifier.last())
	}
}

func TestWatcherOverdueStep(t *testing.T) {
	store, recipes, ctx := setupWatcherStores(t)
	notifier := &collectingNotifier{}

	// Pale ale step 0 is a 60 min rest; 150 minutes on it is well past 2x.
	session := &domain.BrewSession{
		ID:         "watcher-overdue",
		RecipeID:   "cascade-pale-ale",
		RecipeName: "Cascade Pale Ale",
		Status:     domain.SessionActive,
		StepStates: map[int]*domain.StepState{
			0: {Status: domain.StepActive, StartedAt: time.Now().Add(-150 * time.Minute)},
		},
		TimerStates: map[string]*domain.TimerState{},
		StartedAt:   time.Now().Add(-150 * time.Minute),
		UpdatedAt:   time.Now(),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	runWatcherBriefly(t, store, recipes, notifier)

	if notifier.count() == 0 {
		t.Fatal("expected watcher to nudge about overdue step")
	}
	if !strings.Contains(notifier.last(), "Everything okay") {
		t.Fatalf("expected an overdue nudge, got %q", notifier.last())
	}
}

func TestWatcherQuietWhenNothingToReport(t *testing.T) {
	store, recipes, ctx := setupWatcherStores(t)
	notifier := &collectingNotifier{}

	// Active session, just started, timers running within range. Quiet.
	session := &domain.BrewSession{
		ID:         "watcher-quiet",
		RecipeID:   "dry-irish-stout",
		RecipeName: "Dry Irish Stout",
		Status:     domain.SessionActive,
		StepStates: map[int]*domain.StepState{
			0: {Status: domain.StepActive, StartedAt: time.Now()},
		},
		TimerStates: map[string]*domain.TimerState{
			"timer-step-0": {
				ID:        "timer-step-0",
				Label:     "Saccharification rest",
				Duration:  60 * time.Minute,
				Remaining: 55 * time.Minute,
				Status:    domain.TimerRunning,
			},
		},
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	runWatcherBriefly(t, store, recipes, notifier)

	if notifier.count() > 0 {
		t.Fatalf("expected no notifications for fresh session, got %d: %q", notifier.count(), notifier.last())
	}
}

func TestJoinNames(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"Boil"}, "Boil"},
		{[]string{"Boil", "Mash out"}, "Boil and Mash out"},
		{[]string{"A", "B", "C"}, "A, B and C"},
	}
	for _, tt := range tests {
		if got := joinNames(tt.names); got != tt.want {
			t.Errorf("joinNames(%v) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
