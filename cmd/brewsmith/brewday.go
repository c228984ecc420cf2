package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
)

// sessionOrHint returns the current session id, resuming a persisted one
// for the open recipe when possible.
func (a *builderApp) sessionOrHint(ctx context.Context) string {
	if a.sessionID != "" {
		return a.sessionID
	}
	// A session may have survived a restart.
	active, err := a.engine.ActiveSessions(ctx)
	if err == nil {
		for _, s := range active {
			if a.recipeID == "" || s.RecipeID == a.recipeID {
				a.sessionID = s.ID
				a.ui.PrintHint(fmt.Sprintf("Picked up session %s for %q (%s).", s.ID, s.RecipeName, s.Status))
				return a.sessionID
			}
		}
	}
	a.ui.PrintHint("No brew session. 'brew' starts one for the open recipe.")
	return ""
}

func (a *builderApp) startBrewDay(ctx context.Context) {
	if a.recipeID == "" {
		a.ui.PrintHint("Open a recipe first, then 'brew'.")
		return
	}
	session, err := a.engine.StartBrewDay(ctx, a.recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrNoMashSchedule) {
			a.ui.PrintHint("This recipe has no mash schedule. 'mash preset single' is a fine start.")
			return
		}
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't start the brew day: %v", err))
		return
	}
	a.sessionID = session.ID
	a.ui.PrintGood(fmt.Sprintf("Brew day started for %q.", session.RecipeName))
	a.showCurrentStep(ctx)
}

func (a *builderApp) showCurrentStep(ctx context.Context) {
	step, _, err := a.engine.CurrentStep(ctx, a.sessionID)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("Couldn't read the current step: %v", err))
		return
	}
	a.ui.PrintHeading(fmt.Sprintf("Step %d: %s", step.Index+1, step.Name))
	a.ui.PrintBody("  " + step.Instruction)
	if step.DurationMin > 0 {
		pending, err := a.engine.HasPendingTimers(ctx, a.sessionID)
		if err == nil && pending {
			a.ui.PrintHint(fmt.Sprintf("  Timer ready for %.0f min. Say 'ready' when you're there.", step.DurationMin))
		}
	}
}

func (a *builderApp) advance(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	a.moveStep(ctx, id, false)
}

func (a *builderApp) skip(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	a.moveStep(ctx, id, true)
}

func (a *builderApp) moveStep(ctx context.Context, id string, skip bool) {
	var err error
	if skip {
		_, err = a.engine.Skip(ctx, id)
	} else {
		_, err = a.engine.Advance(ctx, id)
	}
	switch {
	case errors.Is(err, domain.ErrNoMoreSteps):
		a.ui.PrintGood("That was the last step. Brew day done, time to clean up.")
		a.sessionID = ""
		return
	case errors.Is(err, domain.ErrSessionNotActive):
		a.ui.PrintHint("The session isn't active. 'resume' it first.")
		return
	case err != nil:
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't advance: %v", err))
		return
	}
	if skip {
		a.ui.PrintBody("Skipped. Moving on.")
	}
	a.showCurrentStep(ctx)
}

func (a *builderApp) pause(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	if err := a.engine.Pause(ctx, id); err != nil {
		a.ui.PrintHint(fmt.Sprintf("Couldn't pause: %v", err))
		return
	}
	a.ui.PrintBody("Session paused. Timers are frozen. 'resume' when you're back.")
}

func (a *builderApp) resume(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	session, err := a.engine.Resume(ctx, id)
	if err != nil {
		a.ui.PrintHint(fmt.Sprintf("Couldn't resume: %v", err))
		return
	}
	a.ui.PrintGood(fmt.Sprintf("Back to the kettle. %q is active again.", session.RecipeName))
	a.showCurrentStep(ctx)
}

func (a *builderApp) startTimers(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	n, err := a.engine.StartPendingTimers(ctx, id)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't start timers: %v", err))
		return
	}
	if n == 0 {
		a.ui.PrintHint("No pending timers on this step.")
		return
	}
	a.ui.PrintGood(fmt.Sprintf("Started %d timer(s). I'll shout when they're up.", n))
}

func (a *builderApp) dismissTimer(ctx context.Context, args []string) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	timerID := ""
	if len(args) > 0 {
		timerID = args[0]
	}
	if timerID == "" {
		// No id given: dismiss the fired timer, or the single running one.
		timers, err := a.engine.ActiveTimers(ctx, id)
		if err != nil {
			a.ui.PrintUrgent(fmt.Sprintf("Couldn't list timers: %v", err))
			return
		}
		for _, t := range timers {
			if t.Status == domain.TimerFired {
				timerID = t.ID
				break
			}
		}
		if timerID == "" && len(timers) == 1 {
			timerID = timers[0].ID
		}
		if timerID == "" {
			a.ui.PrintHint("Which timer? 'timers' lists them, then 'dismiss <id>'.")
			return
		}
	}
	if err := a.engine.DismissTimer(ctx, id, timerID); err != nil {
		a.ui.PrintHint(fmt.Sprintf("Couldn't dismiss %s: %v", timerID, err))
		return
	}
	a.ui.PrintBody(fmt.Sprintf("Dismissed %s.", timerID))
}

func (a *builderApp) showTimers(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	timers, err := a.engine.ActiveTimers(ctx, id)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't list timers: %v", err))
		return
	}
	if len(timers) == 0 {
		a.ui.PrintHint("No timers on this session.")
		return
	}
	a.ui.PrintHeading("Timers:")
	for _, t := range timers {
		line := fmt.Sprintf("  %-16s %-20s %-9s", t.ID, t.Label, t.Status)
		switch t.Status {
		case domain.TimerRunning, domain.TimerPaused:
			line += "  " + formatDuration(t.Remaining) + " left"
		case domain.TimerPending:
			line += "  " + formatDuration(t.Duration) + " ('ready' starts it)"
		}
		if t.Status == domain.TimerFired {
			a.ui.PrintUrgent(line + "  <- waiting on you")
		} else {
			a.ui.PrintBody(line)
		}
	}
}

func (a *builderApp) abandon(ctx context.Context) {
	id := a.sessionOrHint(ctx)
	if id == "" {
		return
	}
	if err := a.engine.Abandon(ctx, id); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Couldn't abandon: %v", err))
		return
	}
	a.sessionID = ""
	a.ui.PrintBody("Session abandoned. The recipe is untouched.")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
