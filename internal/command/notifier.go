package command

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

var _ domain.Notifier = (*CLINotifier)(nil)

var (
	notifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
)

// PrintFunc matches the signature of fmt.Printf and display.UI.Printf, so
// the notifier can write through whichever terminal surface is active.
type PrintFunc func(format string, a ...interface{})

// CLINotifier renders timer and watcher notifications into the terminal
// scrollback. Amber for routine countdowns, red when the brewer is needed.
type CLINotifier struct {
	log  *logger.Logger
	emit PrintFunc
}

// NewCLINotifier wraps a print function; nil falls back to fmt.Printf with
// a trailing newline.
func NewCLINotifier(log *logger.Logger, emit PrintFunc) *CLINotifier {
	if emit == nil {
		emit = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, emit: emit}
}

func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.emit("%s", notifyStyle.Render(message))
	return nil
}

func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify urgent: %s", message)
	n.emit("%s", urgentStyle.Render(message))
	return nil
}
