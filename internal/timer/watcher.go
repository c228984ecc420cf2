package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher checks session state.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// Watcher periodically inspects active brew sessions and nudges the brewer:
// paused sessions, fired timers waiting on acknowledgement, and steps that
// have run long past their rest. Runs on a slower cycle than the timer
// supervisor (default: 1 minute).
type Watcher struct {
	store    domain.SessionStore
	recipes  domain.RecipeStore
	notifier domain.Notifier
	log      *logger.Logger
	interval time.Duration
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(store domain.SessionStore, recipes domain.RecipeStore, notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		store:    store,
		recipes:  recipes,
		notifier: notifier,
		log:      log,
		interval: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled. Intended to
// be called as a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	sessions, err := w.store.ListActive(ctx)
	if err != nil {
		w.log.Error("watcher: listing active sessions: %v", err)
		return
	}
	for _, session := range sessions {
		w.inspect(ctx, session)
	}
}

// inspect examines a single session and decides what to say.
func (w *Watcher) inspect(ctx context.Context, session *domain.BrewSession) {
	w.log.Debug("watcher: session=%s recipe=%s status=%s step=%d/%d",
		session.ID, session.RecipeName, session.Status,
		session.CurrentStepIndex+1, len(session.StepStates))

	recipe, err := w.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		w.log.Error("watcher: loading recipe %s: %v", session.RecipeID, err)
		return
	}

	name, expected := stepInfo(recipe, session.CurrentStepIndex)

	onStepFor := time.Duration(0)
	if state, ok := session.StepStates[session.CurrentStepIndex]; ok && !state.StartedAt.IsZero() {
		onStepFor = time.Since(state.StartedAt)
	}

	msg := w.buildMessage(session, name, expected, onStepFor)
	if msg == "" {
		return
	}
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}

// stepInfo returns the name and expected duration of a brew-day step: the
// mash rests in order, then the boil.
func stepInfo(recipe *domain.Recipe, idx int) (string, time.Duration) {
	if idx < len(recipe.MashSteps) {
		st := recipe.MashSteps[idx]
		return st.Name, time.Duration(st.DurationMin * float64(time.Minute))
	}
	return "Boil", time.Duration(recipe.Equipment.BoilTimeMin * float64(time.Minute))
}

// buildMessage decides what to tell the brewer based on current state.
func (w *Watcher) buildMessage(session *domain.BrewSession, stepName string, expected, onStepFor time.Duration) string {
	if session.Status == domain.SessionPaused {
		elapsed := time.Since(session.UpdatedAt).Round(time.Second)
		return fmt.Sprintf("[Watcher] Brew day paused for %s. The mash doesn't hold temperature forever.", elapsed)
	}

	var running []string
	var fired []string
	for _, ts := range session.TimerStates {
		switch ts.Status {
		case domain.TimerRunning:
			running = append(running, fmt.Sprintf("%s (%s left)", ts.Label, ts.Remaining.Round(time.Second)))
		case domain.TimerFired:
			fired = append(fired, ts.Label)
		}
	}

	// Fired timers take priority.
	if len(fired) > 0 {
		return fmt.Sprintf("[Watcher] Heads up: %s went off and nobody has dismissed it.", joinNames(fired))
	}

	if expected > 0 && onStepFor > expected*2 {
		msg := fmt.Sprintf("[Watcher] %s has been going for %s (expected ~%s). Everything okay?",
			stepName, onStepFor.Round(time.Second), expected.Round(time.Second))
		if len(running) > 0 {
			msg += fmt.Sprintf(" Active timers: %s.", joinNames(running))
		}
		return msg
	}

	if len(running) > 0 {
		w.log.Debug("watcher: active timers for session %s: %v", session.ID, running)
	}
	return ""
}

// joinNames joins names into a readable list: "a", "a and b", "a, b and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
