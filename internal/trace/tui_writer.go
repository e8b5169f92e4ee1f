package trace

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stepMsg carries one step row into the model.
type stepMsg struct{ StepRow }

// episodeMsg carries an episode summary into the model.
type episodeMsg struct{ EpisodeRow }

const maxLogLines = 500

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rewardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	penaltyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	endStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// TUIWriter renders step traces in a live bubbletea view.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(taskID string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)

	width := 100
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 {
		width = cols
	}
	m := newTUIModel(taskID, width)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteStep implements StepWriter.
func (w *TUIWriter) WriteStep(row StepRow) error {
	w.program.Send(stepMsg{row})
	return nil
}

// WriteEpisode implements EpisodeWriter.
func (w *TUIWriter) WriteEpisode(row EpisodeRow) error {
	w.program.Send(episodeMsg{row})
	return nil
}

// Close stops the TUI without signaling the process.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	if p, ok := w.program.(*tea.Program); ok {
		p.Quit()
		<-w.done
	}
}

type tuiModel struct {
	taskID   string
	width    int
	ready    bool
	viewport viewport.Model

	lines    []string
	episodes int
	last     StepRow
}

func newTUIModel(taskID string, width int) *tuiModel {
	return &tuiModel{taskID: taskID, width: width}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.refresh()
		return m, nil

	case stepMsg:
		m.last = msg.StepRow
		m.appendLine(formatStep(msg.StepRow))
		return m, nil

	case episodeMsg:
		m.episodes++
		line := fmt.Sprintf("episode %s finished: outcome=%s steps=%d total_reward=%.3f",
			msg.EpisodeID, msg.Outcome, msg.Steps, msg.TotalReward)
		m.appendLine(endStyle.Render(line))
		return m, nil
	}
	return m, nil
}

func (m *tuiModel) appendLine(line string) {
	m.lines = append(m.lines, wordwrap.String(line, m.width))
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.refresh()
}

func (m *tuiModel) refresh() {
	if !m.ready {
		return
	}
	content := ""
	for _, l := range m.lines {
		content += l + "\n"
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *tuiModel) View() string {
	header := headerStyle.Render("flightgym "+m.taskID) + "\n" +
		labelStyle.Render(fmt.Sprintf("episodes finished: %d | step %d | alt %.0f ft | hdg %.1f° | target %.1f°/%.0f ft | q to quit",
			m.episodes, m.last.Step, m.last.AltitudeFt, m.last.HeadingDeg,
			m.last.TargetHeadingDeg, m.last.TargetAltitudeFt)) + "\n\n"
	if !m.ready {
		return header
	}
	return header + m.viewport.View()
}

func formatStep(r StepRow) string {
	style := rewardStyle
	if r.Reward < -0.5 {
		style = penaltyStyle
	}
	line := fmt.Sprintf("[%s] step=%3d reward=%s alt=%.0f hdg=%.1f roll=%.1f",
		r.Timestamp.Format("15:04:05.000"), r.Step,
		style.Render(fmt.Sprintf("%+.4f", r.Reward)),
		r.AltitudeFt, r.HeadingDeg, r.RollDeg)
	if r.Terminated {
		line += " " + penaltyStyle.Render("TERMINATED")
	}
	if r.Truncated {
		line += " " + endStyle.Render("TRUNCATED")
	}
	return line
}
