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

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) urgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urgent)
}

func (m *mockNotifier) totalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages) + len(m.urgent)
}

func brewSession(id string, status domain.SessionStatus, timers map[string]*domain.TimerState) *domain.BrewSession {
	return &domain.BrewSession{
		ID:          id,
		RecipeID:    "test",
		RecipeName:  "Test Batch",
		Status:      status,
		StepStates:  map[int]*domain.StepState{0: {Status: domain.StepActive, StartedAt: time.Now()}},
		TimerStates: timers,
		StartedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestSupervisorFiresTimer(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemorySessionStore(log)
	notifier := &mockNotifier{}
	ctx := context.Background()

	session := brewSession("fire-test", domain.SessionActive, map[string]*domain.TimerState{
		"timer-step-0": {
			ID:        "timer-step-0",
			StepIndex: 0,
			Label:     "Saccharification rest",
			Duration:  2 * time.Second,
			Remaining: 100 * time.Millisecond, // About to fire.
			Status:    domain.TimerRunning,
		},
	})
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	sup := New(store, notifier, log, WithTickInterval(50*time.Millisecond), WithNotifyCooldown(100*time.Millisecond))
	sup.Start(ctx)
	defer sup.Stop()

	time.Sleep(300 * time.Millisecond)

	if notifier.urgentCount() == 0 {
		t.Fatal("expected at least one urgent notification for fired timer")
	}

	s, err := store.Load(ctx, "fire-test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ts := s.TimerStates["timer-step-0"]
	if ts.Status != domain.TimerFired {
		t.Fatalf("expected timer status fired, got %s", ts.Status)
	}
	if ts.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %s", ts.Remaining)
	}

	notifier.mu.Lock()
	first := notifier.urgent[0]
	notifier.mu.Unlock()
	if !strings.Contains(first, "Saccharification rest") {
		t.Fatalf("expected the rest label in the message, got %q", first)
	}
}

func TestSupervisorRespectsMaxEscalation(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemorySessionStore(log)
	notifier := &mockNotifier{}
	ctx := context.Background()

	session := brewSession("escalation-test", domain.SessionActive, map[string]*domain.TimerState{
		"timer-step-0": {
			ID:              "timer-step-0",
			Label:           "Boil",
			Duration:        1 * time.Second,
			Remaining:       0,
			Status:          domain.TimerFired,
			EscalationLevel: 10, // Past max.
			LastNotified:    time.Now().Add(-1 * time.Hour),
		},
	})
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	sup := New(store, notifier, log,
		WithTickInterval(50*time.Millisecond),
		WithMaxEscalation(3),
	)
	sup.Start(ctx)
	defer sup.Stop()

	time.Sleep(200 * time.Millisecond)

	if n := notifier.totalCount(); n > 0 {
		t.Fatalf("expected no notifications past max escalation, got %d", n)
	}
}

func TestSupervisorSkipsPausedSessions(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemorySessionStore(log)
	notifier := &mockNotifier{}
	ctx := context.Background()

	session := brewSession("paused-test", domain.SessionPaused, map[string]*domain.TimerState{
		"timer-step-0": {
			ID:        "timer-step-0",
			Label:     "Mash out",
			Duration:  1 * time.Second,
			Remaining: 50 * time.Millisecond,
			Status:    domain.TimerRunning, // Running but session is paused.
		},
	})
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	sup := New(store, notifier, log, WithTickInterval(50*time.Millisecond))
	sup.Start(ctx)
	defer sup.Stop()

	time.Sleep(200 * time.Millisecond)

	if notifier.urgentCount() > 0 {
		t.Fatal("expected no notifications for paused session")
	}
	s, _ := store.Load(ctx, "paused-test")
	if s.TimerStates["timer-step-0"].Remaining != 50*time.Millisecond {
		t.Fatal("paused session timer should not count down")
	}
}

func TestSupervisorStartIsIdempotent(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemorySessionStore(log)
	notifier := &mockNotifier{}
	ctx := context.Background()

	sup := New(store, notifier, log, WithTickInterval(50*time.Millisecond))
	sup.Start(ctx)
	sup.Start(ctx) // Second start is a no-op.
	sup.Stop()
	sup.Stop() // Second stop is a no-op too.
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1 * time.Second, "1 second"},
		{45 * time.Second, "45 seconds"},
		{60 * time.Second, "1 minute"},
		{90 * time.Second, "2 minutes"},
		{60 * time.Minute, "60 minutes"},
	}
	for _, tt := range tests {
		if got := formatRemaining(tt.d); got != tt.want {
			t.Errorf("formatRemaining(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
