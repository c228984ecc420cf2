package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/mash"
)

// BrewStep is one step of the brew-day walk: every mash rest in order,
// then the boil. Steps are derived from the recipe on demand; the session
// only stores indexes into this list.
type BrewStep struct {
	Index       int
	Name        string
	Instruction string
	DurationMin float64
	TimerLabel  string
}

// BrewSteps derives the ordered brew-day step list for a recipe. Infusion
// temperatures and strike volumes come from the resolved mash schedule.
func (e *Engine) BrewSteps(recipe *domain.Recipe) []BrewStep {
	schedule := mash.Resolve(
		recipe.MashSteps,
		recipe.TotalGrainKg(),
		recipe.Equipment.MashThicknessLPerKg,
		mash.DefaultGrainTempC,
	)

	steps := make([]BrewStep, 0, len(schedule.Steps)+1)
	for i, st := range schedule.Steps {
		steps = append(steps, BrewStep{
			Index:       i,
			Name:        st.Name,
			Instruction: mashInstruction(st),
			DurationMin: st.DurationMin,
			TimerLabel:  fmt.Sprintf("%s rest", st.Name),
		})
	}

	boilMin := recipe.Equipment.BoilTimeMin
	steps = append(steps, BrewStep{
		Index:       len(steps),
		Name:        "Boil",
		Instruction: boilInstruction(recipe, boilMin),
		DurationMin: boilMin,
		TimerLabel:  "Boil",
	})
	return steps
}

func mashInstruction(st mash.ResolvedStep) string {
	switch st.Type {
	case domain.MashInfusion:
		return fmt.Sprintf("Add %.1f L of water at %.1f°C to hit %.1f°C. Hold for %.0f min.",
			st.InfusionVolumeL, st.InfusionTempC, st.TargetTempC, st.DurationMin)
	case domain.MashDecoction:
		return fmt.Sprintf("Pull, boil, and return a decoction to raise the mash to %.1f°C. Hold for %.0f min.",
			st.TargetTempC, st.DurationMin)
	default:
		return fmt.Sprintf("Heat the mash to %.1f°C. Hold for %.0f min.", st.TargetTempC, st.DurationMin)
	}
}

func boilInstruction(recipe *domain.Recipe, boilMin float64) string {
	n := 0
	for _, h := range recipe.Hops {
		if h.Use == domain.HopBoil || h.Use == domain.HopFirstWort {
			n++
		}
	}
	if n == 0 {
		return fmt.Sprintf("Boil the wort for %.0f min.", boilMin)
	}
	return fmt.Sprintf("Boil the wort for %.0f min. %d hop addition(s); add each at its scheduled time before the end of the boil.", boilMin, n)
}

// StartBrewDay begins a brew session for a recipe. The recipe must have a
// mash schedule. Each step gets a pending timer that the brewer starts
// explicitly.
func (e *Engine) StartBrewDay(ctx context.Context, recipeID string) (*domain.BrewSession, error) {
	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	if len(recipe.MashSteps) == 0 {
		return nil, domain.ErrNoMashSchedule
	}

	steps := e.BrewSteps(recipe)
	now := time.Now()
	session := &domain.BrewSession{
		ID:               newID(),
		RecipeID:         recipe.ID,
		RecipeName:       recipe.Name,
		CurrentStepIndex: 0,
		StepStates:       make(map[int]*domain.StepState),
		TimerStates:      make(map[string]*domain.TimerState),
		Status:           domain.SessionActive,
		StartedAt:        now,
		UpdatedAt:        now,
	}
	for i := range steps {
		session.StepStates[i] = &domain.StepState{Status: domain.StepPending}
	}
	session.StepStates[0].Status = domain.StepActive
	session.StepStates[0].StartedAt = now
	e.maybeCreateTimer(session, steps[0])

	if err := e.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started brew session %s for %q (%d steps)", session.ID, recipe.Name, len(steps))
	return session, nil
}

// CurrentStep returns the current brew-day step and its state.
func (e *Engine) CurrentStep(ctx context.Context, sessionID string) (*BrewStep, *domain.StepState, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	recipe, err := e.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting recipe: %w", err)
	}

	steps := e.BrewSteps(recipe)
	idx := session.CurrentStepIndex
	if idx >= len(steps) {
		return nil, nil, domain.ErrNoMoreSteps
	}
	return &steps[idx], session.StepStates[idx], nil
}

// Advance completes the current step and moves to the next. Completing the
// last step completes the session and returns ErrNoMoreSteps.
func (e *Engine) Advance(ctx context.Context, sessionID string) (*BrewStep, error) {
	return e.move(ctx, sessionID, domain.StepDone)
}

// Skip marks the current step skipped and moves to the next.
func (e *Engine) Skip(ctx context.Context, sessionID string) (*BrewStep, error) {
	return e.move(ctx, sessionID, domain.StepSkipped)
}

func (e *Engine) move(ctx context.Context, sessionID string, outcome domain.StepStatus) (*BrewStep, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.Status != domain.SessionActive {
		return nil, domain.ErrSessionNotActive
	}
	recipe, err := e.recipes.Get(ctx, session.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	steps := e.BrewSteps(recipe)

	// Close out the current step. Its timers keep running until they fire
	// or the brewer dismisses them.
	now := time.Now()
	current := session.StepStates[session.CurrentStepIndex]
	current.Status = outcome
	current.CompletedAt = now

	nextIdx := session.CurrentStepIndex + 1
	if nextIdx >= len(steps) {
		session.Status = domain.SessionCompleted
		session.UpdatedAt = now
		if err := e.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		e.log.Info("brew session %s completed", sessionID)
		return nil, domain.ErrNoMoreSteps
	}

	session.CurrentStepIndex = nextIdx
	session.StepStates[nextIdx].Status = domain.StepActive
	session.StepStates[nextIdx].StartedAt = now
	session.UpdatedAt = now
	e.maybeCreateTimer(session, steps[nextIdx])

	if err := e.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.log.Debug("brew session %s moved to step %d/%d (%s)", sessionID, nextIdx+1, len(steps), outcome)
	return &steps[nextIdx], nil
}

// Pause pauses the session and all running timers.
func (e *Engine) Pause(ctx context.Context, sessionID string) error {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if session.Status != domain.SessionActive {
		return domain.ErrSessionNotActive
	}

	session.Status = domain.SessionPaused
	session.UpdatedAt = time.Now()
	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerRunning {
			ts.Status = domain.TimerPaused
		}
	}

	if err := e.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	e.log.Info("brew session %s paused", sessionID)
	return nil
}

// Resume resumes a paused session and its paused timers.
func (e *Engine) Resume(ctx context.Context, sessionID string) (*domain.BrewSession, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.Status != domain.SessionPaused {
		return nil, domain.ErrSessionPaused
	}

	session.Status = domain.SessionActive
	session.UpdatedAt = time.Now()
	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerPaused {
			ts.Status = domain.TimerRunning
		}
	}

	if err := e.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	e.log.Info("brew session %s resumed", sessionID)
	return session, nil
}

// Abandon marks a session as abandoned.
func (e *Engine) Abandon(ctx context.Context, sessionID string) error {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	session.Status = domain.SessionAbandoned
	session.UpdatedAt = time.Now()
	if err := e.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	e.log.Info("brew session %s abandoned", sessionID)
	return nil
}

// SessionStatus returns the full session state.
func (e *Engine) SessionStatus(ctx context.Context, sessionID string) (*domain.BrewSession, error) {
	return e.sessions.Load(ctx, sessionID)
}

// ActiveSessions returns all active or paused sessions.
func (e *Engine) ActiveSessions(ctx context.Context) ([]*domain.BrewSession, error) {
	return e.sessions.ListActive(ctx)
}

// maybeCreateTimer creates a pending timer for a step with a duration. The
// timer does not count down until the brewer confirms with "start timers".
func (e *Engine) maybeCreateTimer(session *domain.BrewSession, step BrewStep) {
	if step.DurationMin <= 0 {
		return
	}
	d := time.Duration(step.DurationMin * float64(time.Minute))
	timerID := fmt.Sprintf("timer-step-%d", step.Index)
	session.TimerStates[timerID] = &domain.TimerState{
		ID:        timerID,
		StepIndex: step.Index,
		Label:     step.TimerLabel,
		Duration:  d,
		Remaining: d,
		Status:    domain.TimerPending,
	}
	e.log.Debug("created pending timer %s (%s) for step %d", timerID, d, step.Index)
}

// StartPendingTimers transitions all pending timers to running. Returns the
// number started.
func (e *Engine) StartPendingTimers(ctx context.Context, sessionID string) (int, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("loading session: %w", err)
	}

	started := 0
	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerPending {
			ts.Status = domain.TimerRunning
			started++
			e.log.Debug("started timer %s (%s)", ts.ID, ts.Duration)
		}
	}
	if started > 0 {
		session.UpdatedAt = time.Now()
		if err := e.sessions.Save(ctx, session); err != nil {
			return 0, fmt.Errorf("saving session: %w", err)
		}
	}
	return started, nil
}

// HasPendingTimers reports whether any timer is waiting to start.
func (e *Engine) HasPendingTimers(ctx context.Context, sessionID string) (bool, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("loading session: %w", err)
	}
	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerPending {
			return true, nil
		}
	}
	return false, nil
}

// DismissTimer dismisses a single running or fired timer by ID.
func (e *Engine) DismissTimer(ctx context.Context, sessionID, timerID string) error {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	ts, ok := session.TimerStates[timerID]
	if !ok {
		return fmt.Errorf("timer %q not found", timerID)
	}
	if ts.Status != domain.TimerRunning && ts.Status != domain.TimerFired {
		return fmt.Errorf("timer %q is %s, cannot dismiss", timerID, ts.Status)
	}

	ts.Status = domain.TimerDismissed
	session.UpdatedAt = time.Now()
	if err := e.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	e.log.Info("dismissed timer %s (%s)", timerID, ts.Label)
	return nil
}

// ActiveTimers returns all running or fired timers for a session.
func (e *Engine) ActiveTimers(ctx context.Context, sessionID string) ([]*domain.TimerState, error) {
	session, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	var active []*domain.TimerState
	for _, ts := range session.TimerStates {
		if ts.Status == domain.TimerRunning || ts.Status == domain.TimerFired {
			active = append(active, ts)
		}
	}
	return active, nil
}
