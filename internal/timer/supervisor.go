// Package timer implements the background supervisor that counts down brew
// timers (mash rests and the boil) and fires notifications when they expire.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor checks timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated notifications
// for a fired timer.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which the supervisor
// stops nagging.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithReminderInterval sets how often running timers send periodic reminders.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.reminderInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to expiry a timer must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// WithWatcher enables the brew-day watcher with the given recipe store and
// options.
func WithWatcher(recipes domain.RecipeStore, opts ...WatcherOption) Option {
	return func(s *Supervisor) {
		s.watcherRecipes = recipes
		s.watcherOpts = opts
	}
}

// Supervisor runs in the background and manages timer countdown and
// notifications across all active brew sessions. Optionally runs a Watcher
// on a slower cycle for contextual nudges.
type Supervisor struct {
	store               domain.SessionStore
	notifier            domain.Notifier
	log                 *logger.Logger
	tickInterval        time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	reminderInterval    time.Duration
	almostDoneThreshold time.Duration

	watcherRecipes domain.RecipeStore
	watcherOpts    []WatcherOption
	watcher        *Watcher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a timer supervisor with the given dependencies and options.
// Brew timers run for tens of minutes, so the defaults remind less often
// than a kitchen timer would.
func New(store domain.SessionStore, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		store:               store,
		notifier:            notifier,
		log:                 log,
		tickInterval:        1 * time.Second,
		notifyCooldown:      30 * time.Second,
		maxEscalation:       3,
		reminderInterval:    10 * time.Minute,
		almostDoneThreshold: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	if s.watcherRecipes != nil {
		s.watcher = NewWatcher(s.store, s.watcherRecipes, s.notifier, s.log, s.watcherOpts...)
		go s.watcher.Run(childCtx)
	}

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop gracefully shuts down the supervisor.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("timer supervisor stopped")
}

func (s *Supervisor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle: decrement timers, fire notifications.
func (s *Supervisor) tick(ctx context.Context) {
	sessions, err := s.store.ListActive(ctx)
	if err != nil {
		s.log.Error("supervisor: listing active sessions: %v", err)
		return
	}
	for _, session := range sessions {
		s.tickSession(ctx, session)
	}
}

// tickSession handles timer updates for a single session. Paused sessions
// keep their timers frozen.
func (s *Supervisor) tickSession(ctx context.Context, session *domain.BrewSession) {
	if session.Status != domain.SessionActive {
		return
	}

	changed := false
	now := time.Now()

	for _, ts := range session.TimerStates {
		if ts.Status != domain.TimerRunning {
			continue
		}
		changed = true
		if s.countDown(ctx, ts, now) {
			continue
		}
		s.maybeRemind(ctx, ts, now)
	}

	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerFired && s.nagFired(ctx, ts, now) {
			changed = true
		}
	}

	if changed {
		if err := s.store.Save(ctx, session); err != nil {
			s.log.Error("supervisor: saving session %s: %v", session.ID, err)
		}
	}
}

// countDown decrements one running timer. Returns true if the timer fired.
func (s *Supervisor) countDown(ctx context.Context, ts *domain.TimerState, now time.Time) bool {
	ts.Remaining -= s.tickInterval
	if ts.Remaining > 0 {
		return false
	}

	ts.Remaining = 0
	ts.Status = domain.TimerFired
	s.log.Debug("timer %s fired", ts.ID)

	if err := s.notifier.NotifyUrgent(ctx, s.escalationMessage(ts)); err != nil {
		s.log.Error("supervisor: notifying timer fire: %v", err)
	}
	ts.LastNotified = now
	ts.EscalationLevel = 1
	return true
}

// maybeRemind sends the "almost done" warning and periodic reminders for a
// running timer.
func (s *Supervisor) maybeRemind(ctx context.Context, ts *domain.TimerState, now time.Time) {
	if !ts.WarnedAlmost && ts.Remaining <= s.almostDoneThreshold && ts.Duration > s.almostDoneThreshold*2 {
		ts.WarnedAlmost = true
		msg := fmt.Sprintf("[Timer] %s almost done, %s left.", ts.Label, formatRemaining(ts.Remaining))
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.log.Error("supervisor: almost-done notify: %v", err)
		}
		ts.LastRemindedAt = now
		return
	}

	if s.reminderInterval <= 0 || ts.Duration <= s.reminderInterval {
		return
	}
	due := false
	if ts.LastRemindedAt.IsZero() {
		// First reminder after reminderInterval of elapsed countdown.
		due = ts.Duration-ts.Remaining >= s.reminderInterval
	} else {
		due = now.Sub(ts.LastRemindedAt) >= s.reminderInterval
	}
	if !due {
		return
	}
	ts.LastRemindedAt = now
	msg := fmt.Sprintf("[Timer] %s: %s remaining.", ts.Label, formatRemaining(ts.Remaining))
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.log.Error("supervisor: reminder notify: %v", err)
	}
}

// nagFired re-notifies a fired timer. Returns true if the session changed.
func (s *Supervisor) nagFired(ctx context.Context, ts *domain.TimerState, now time.Time) bool {
	if ts.EscalationLevel > s.maxEscalation {
		return false
	}
	if !ts.LastNotified.IsZero() && now.Sub(ts.LastNotified) < s.notifyCooldown {
		return false
	}

	if err := s.notifier.Notify(ctx, s.escalationMessage(ts)); err != nil {
		s.log.Error("supervisor: escalation notify: %v", err)
	}
	ts.LastNotified = now
	ts.EscalationLevel++
	return true
}

// escalationMessage returns a message based on the escalation level.
func (s *Supervisor) escalationMessage(ts *domain.TimerState) string {
	switch ts.EscalationLevel {
	case 0:
		return fmt.Sprintf("[Timer] %s is done.", ts.Label)
	case 1:
		return fmt.Sprintf("[Timer] %s is done. Go check the kettle.", ts.Label)
	case 2:
		return fmt.Sprintf("[Timer] %s needs you at the kettle. Move.", ts.Label)
	default:
		return fmt.Sprintf("[Timer] %s.", ts.Label)
	}
}

// formatRemaining returns a human-friendly duration for timer reminders.
// Rounds to the nearest minute once there's at least 1 minute left.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m <= 0 {
		m = 1
	}
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
