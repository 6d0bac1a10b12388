package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var errInterrupted = errors.New("interrupted")

type doneMsg struct{ value any }

// spinnerModel shows a spinner until its job finishes.
type spinnerModel struct {
	spinner     spinner.Model
	title       string
	job         func() any
	result      any
	done        bool
	interrupted bool
}

func (m spinnerModel) Init() tea.Cmd {
	job := m.job
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{value: job()}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.result = msg.value
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return m.spinner.View() + " " + labelStyle.Render(m.title) + "\n"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// withSpinner runs job while a spinner is drawn on out. When out is not a
// terminal the job just runs. Ctrl+C cancels the job's context.
func withSpinner[T any](ctx context.Context, out io.Writer, title string, job func(ctx context.Context) T) (T, error) {
	if !isTerminal(out) {
		return job(ctx), nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(colorBlue)),
		),
		title: title,
		job:   func() any { return job(ctx) },
	}

	var zero T
	final, err := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil {
		return zero, err
	}
	m := final.(spinnerModel)
	if m.interrupted {
		return zero, errInterrupted
	}
	result, _ := m.result.(T)
	return result, nil
}
