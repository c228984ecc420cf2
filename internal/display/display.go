// Package display owns the terminal. A Bubble Tea program keeps a status
// bar of live brew timers and an input prompt pinned to the bottom of the
// screen; everything else the app says goes into the scrollback above it,
// so background notifications never tear the prompt.
package display

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brewsmith/brewsmith/internal/domain"
)

// The palette leans warm: amber for headings and running timers, copper
// for the prompt, coral for anything that needs the brewer's hands.
var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0b429")).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d6d3d1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a7f3d0"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fda4af"))
	echoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))

	barStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#1c1917")).Foreground(lipgloss.Color("#a8a29e"))
	barRunningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
	barFiredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fda4af")).Bold(true)
	barPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#57534e")).Italic(true)
	barDividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44403c"))

	// BannerStyle colors the startup banner and greeting.
	BannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

const prompt = "brew> "

// UI is the shared handle the rest of the app prints through. Run blocks
// the main goroutine; every other method is safe from any goroutine once
// WaitReady has returned.
type UI struct {
	sessions domain.SessionStore
	prog     *tea.Program
	in       chan string
	ready    chan struct{}
	stopped  atomic.Bool
}

func NewUI(sessions domain.SessionStore) *UI {
	return &UI{
		sessions: sessions,
		in:       make(chan string, 16),
		ready:    make(chan struct{}),
	}
}

// InputChan yields completed command lines typed at the prompt.
func (u *UI) InputChan() <-chan string { return u.in }

// WaitReady blocks until the event loop is accepting prints.
func (u *UI) WaitReady() { <-u.ready }

// Quit asks the event loop to exit; Run then returns.
func (u *UI) Quit() {
	if u.prog != nil {
		u.prog.Quit()
	}
}

// Println writes a line into the scrollback above the prompt. Before the
// program starts (and after it stops) it degrades to plain stdout, so
// startup and shutdown messages still land somewhere.
func (u *UI) Println(a ...interface{}) {
	if u.prog != nil && !u.stopped.Load() {
		u.prog.Println(a...)
		return
	}
	fmt.Println(a...)
}

// Printf writes formatted text into the scrollback, on its own line.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.prog != nil && !u.stopped.Load() {
		u.prog.Printf(format, a...)
		return
	}
	fmt.Printf(format, a...)
}

// PrintHeading prints a section header.
func (u *UI) PrintHeading(text string) { u.Println(headingStyle.Render("  " + text)) }

// PrintBody prints regular content.
func (u *UI) PrintBody(text string) { u.Println(bodyStyle.Render("  " + text)) }

// PrintHint prints dimmed guidance.
func (u *UI) PrintHint(text string) { u.Println(hintStyle.Render("  " + text)) }

// PrintGood prints a positive result, like an in-range style metric.
func (u *UI) PrintGood(text string) { u.Println(goodStyle.Render("  " + text)) }

// PrintUrgent prints errors and anything that needs attention now.
func (u *UI) PrintUrgent(text string) { u.Println(urgentStyle.Render("  " + text)) }

// Run starts the event loop and blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// The prompt must stay plain text: styled prompts carry ANSI bytes
	// that throw off textinput's width and scroll offsets.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = promptStyle
	ti.CharLimit = 500
	ti.Width = 72
	ti.Focus()

	u.prog = tea.NewProgram(shell{
		sessions: u.sessions,
		input:    ti,
		lines:    u.in,
		ready:    u.ready,
	})
	_, err := u.prog.Run()
	u.stopped.Store(true)
	return err
}

// shell is the Bubble Tea model: the prompt plus the timer bar above it.
type shell struct {
	sessions domain.SessionStore
	input    textinput.Model
	lines    chan<- string
	ready    chan struct{}
	bar      []barEntry
	width    int
}

// barEntry is one timer slot in the status bar, snapshotted each tick.
type barEntry struct {
	step      int
	label     string
	remaining time.Duration
	status    domain.TimerStatus
}

type barTickMsg struct{}

func barTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return barTickMsg{} })
}

func (s shell) Init() tea.Cmd {
	ready := s.ready
	return tea.Batch(
		textinput.Blink,
		barTick(),
		func() tea.Msg { close(ready); return nil },
	)
}

func (s shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return s, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(s.input.Value())
			s.input.Reset()
			if line == "" {
				return s, nil
			}
			s.lines <- line
			// tea.Println runs outside Update, so echoing here can't
			// deadlock against the program's own message queue.
			return s, tea.Println(promptStyle.Render(prompt) + echoStyle.Render(line))
		}

	case tea.WindowSizeMsg:
		s.width = msg.Width
		if w := msg.Width - len(prompt); w > 0 {
			s.input.Width = w
		}
		return s, nil

	case barTickMsg:
		s.bar = s.snapshotTimers()
		return s, tea.Batch(barTick(), tea.SetWindowTitle(s.windowTitle()))
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// snapshotTimers collects the displayable timers of every live session,
// in brew order so the bar doesn't shuffle between ticks.
func (s shell) snapshotTimers() []barEntry {
	live, err := s.sessions.ListActive(context.Background())
	if err != nil {
		return s.bar
	}
	var out []barEntry
	for _, session := range live {
		for _, t := range session.TimerStates {
			switch t.Status {
			case domain.TimerPending, domain.TimerRunning, domain.TimerFired:
				out = append(out, barEntry{
					step:      t.StepIndex,
					label:     t.Label,
					remaining: t.Remaining,
					status:    t.Status,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].step != out[j].step {
			return out[i].step < out[j].step
		}
		return out[i].label < out[j].label
	})
	return out
}

func (s shell) windowTitle() string {
	if len(s.bar) == 0 {
		return "brewsmith"
	}
	parts := make([]string, 0, len(s.bar))
	for _, e := range s.bar {
		parts = append(parts, e.label+" "+e.barText())
	}
	return "brewsmith | " + strings.Join(parts, " | ")
}

func (e barEntry) barText() string {
	switch e.status {
	case domain.TimerFired:
		return "UP!"
	case domain.TimerPending:
		return "waiting"
	default:
		return clockFormat(e.remaining)
	}
}

func (s shell) View() string {
	var b strings.Builder
	if len(s.bar) > 0 {
		b.WriteString(s.renderBar())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(s.input.View())
	return b.String()
}

func (s shell) renderBar() string {
	parts := make([]string, 0, len(s.bar))
	for _, e := range s.bar {
		var styled string
		switch e.status {
		case domain.TimerFired:
			styled = barFiredStyle.Render(e.label + ": UP!")
		case domain.TimerPending:
			styled = barPendingStyle.Render(e.label + ": waiting")
		default:
			styled = e.label + ": " + barRunningStyle.Render(clockFormat(e.remaining))
		}
		parts = append(parts, styled)
	}
	width := s.width
	if width <= 0 {
		width = 80
	}
	content := " " + strings.Join(parts, barDividerStyle.Render(" · ")) + " "
	return barStyle.Width(width).Render(content)
}

// clockFormat renders a countdown the way a kitchen timer would:
// 1:02:35, 12:05, or 0:42. Boil timers regularly run past an hour.
func clockFormat(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
