// Package ui renders build progress for `py2cpp build --ui`.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"py2cpp/internal/buildpipeline"
)

type fileState uint8

const (
	stateQueued fileState = iota
	stateWorking
	stateDone
	stateFailed
)

// fileItem is one input of the build as the model last saw it.
type fileItem struct {
	path  string
	state fileState
	stage buildpipeline.Stage
	err   string
}

// label is the status column: the current stage while working.
func (f fileItem) label() string {
	switch f.state {
	case stateWorking:
		return stageVerb(f.stage)
	case stateDone:
		return "done"
	case stateFailed:
		return "error"
	}
	return "queued"
}

func (f fileItem) finished() bool {
	return f.state == stateDone || f.state == stateFailed
}

// stageWeight is how far through a unit the stage starts.
var stageWeight = map[buildpipeline.Stage]float64{
	buildpipeline.StageParse: 0.2,
	buildpipeline.StageCheck: 0.5,
	buildpipeline.StageEmit:  0.8,
	buildpipeline.StageWrite: 0.95,
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

type progressModel struct {
	title      string
	events     <-chan buildpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows build events
// until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, 0, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		if _, dup := m.index[file]; dup {
			continue
		}
		m.index[file] = len(m.items)
		m.items = append(m.items, fileItem{path: file})
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(buildpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent folds one event into the model. Events without a file only
// move the header; events for files outside the build are ignored.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		if verb := stageVerb(ev.Stage); verb != "" {
			m.stageLabel = verb
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch ev.Status {
	case buildpipeline.StatusQueued:
		item.state = stateQueued
	case buildpipeline.StatusWorking:
		item.state, item.stage = stateWorking, ev.Stage
	case buildpipeline.StatusDone:
		item.state, item.stage = stateDone, ev.Stage
	case buildpipeline.StatusError:
		item.state, item.stage = stateFailed, ev.Stage
		if ev.Err != nil {
			item.err = ev.Err.Error()
		}
	}
	return m.prog.SetPercent(m.percent())
}

// percent: доля выполненной работы по всем файлам.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch {
		case item.finished():
			total++
		case item.state == stateWorking:
			total += stageWeight[item.stage]
		}
	}
	return total / float64(len(m.items))
}

// tally counts finished and failed files for the footer.
func (m *progressModel) tally() (finished, failed int) {
	for _, item := range m.items {
		if item.finished() {
			finished++
		}
		if item.state == stateFailed {
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 9
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := statusStyle(item.state).Render(fmt.Sprintf("%*s", statusWidth, item.label()))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
		if item.state == stateFailed {
			detail := fmt.Sprintf("failed in %s", item.stage)
			if item.err != "" {
				detail += ": " + item.err
			}
			fmt.Fprintf(&b, "  %*s %s\n", statusWidth, "", detailStyle.Render(truncate(detail, nameWidth)))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	finished, failed := m.tally()
	fmt.Fprintf(&b, "\n%d/%d files", finished, len(m.items))
	if failed > 0 {
		b.WriteString(failedStyle.Render(fmt.Sprintf(", %d failed", failed)))
	}
	b.WriteString("\n")
	return b.String()
}

func stageVerb(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageParse:
		return "parsing"
	case buildpipeline.StageCheck:
		return "checking"
	case buildpipeline.StageEmit:
		return "emitting"
	case buildpipeline.StageWrite:
		return "writing"
	}
	return ""
}

func statusStyle(state fileState) lipgloss.Style {
	switch state {
	case stateWorking:
		return workingStyle
	case stateDone:
		return doneStyle
	case stateFailed:
		return failedStyle
	}
	return queuedStyle
}

// truncate shortens value to width terminal columns, wide runes counted
// twice.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
