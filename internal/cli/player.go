package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Rows outside the viewport: title, floating nav (two rows, kept blank while
// the inline row is visible), help and status.
const playerChromeRows = 5

type playerKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Mark     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func newPlayerKeys() playerKeys {
	return playerKeys{
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		Mark:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark complete")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k playerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Mark, k.Down, k.Quit}
}

func (k playerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Mark}, {k.Up, k.Down, k.PageUp, k.PageDown}, {k.Quit}}
}

type snapshotMsg struct {
	view *service.CourseProgressView
	err  error
}

type markedMsg struct{ err error }

type navigatedMsg struct {
	target *progress.ActivityRef
	url    string
	err    error
}

// playerModel shows one activity at a time. The body scrolls in a viewport
// that ends with the inline prev/next row; while that row is scrolled out of
// view a floating copy is pinned below the viewport.
type playerModel struct {
	ctx        context.Context
	svc        service.ProgressService
	source     service.SnapshotSource
	courseUUID string
	current    string

	view    *service.CourseProgressView
	vp      viewport.Model
	keys    playerKeys
	help    help.Model
	nav     progress.NavDisplay
	navLine int

	width, height int
	status        string
	err           error
}

func newPlayerModel(ctx context.Context, svc service.ProgressService, src service.SnapshotSource, courseUUID, activityUUID string) playerModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	h := help.New()
	h.Styles.ShortKey = formatter.StyleBlue
	h.Styles.ShortDesc = formatter.StyleDim
	h.Styles.ShortSeparator = formatter.StyleDim

	return playerModel{
		ctx:        ctx,
		svc:        svc,
		source:     src,
		courseUUID: courseUUID,
		current:    activityUUID,
		vp:         vp,
		keys:       newPlayerKeys(),
		help:       h,
	}
}

func (m playerModel) Init() tea.Cmd {
	return m.load()
}

func (m playerModel) load() tea.Cmd {
	ctx, svc, courseUUID, current := m.ctx, m.svc, m.courseUUID, m.current
	return func() tea.Msg {
		view, err := svc.CourseView(ctx, courseUUID, current)
		return snapshotMsg{view: view, err: err}
	}
}

func (m playerModel) markComplete() tea.Cmd {
	ctx, src, courseUUID, current := m.ctx, m.source, m.courseUUID, m.current
	return func() tea.Msg {
		_, err := src.MarkComplete(ctx, courseUUID, current)
		return markedMsg{err: err}
	}
}

func (m playerModel) navigate(dir service.Direction) tea.Cmd {
	ctx, svc, courseUUID, current := m.ctx, m.svc, m.courseUUID, m.current
	return func() tea.Msg {
		var pushed string
		router := progress.RouterFunc(func(_ context.Context, url string) error {
			pushed = url
			return nil
		})
		target, err := svc.Navigate(ctx, courseUUID, current, dir, router)
		return navigatedMsg{target: target, url: pushed, err: err}
	}
}

func (m playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-playerChromeRows, 3)
		m.render()
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.keys.Next.SetEnabled(msg.view.Position.Next != nil)
		m.keys.Prev.SetEnabled(msg.view.Position.Prev != nil)
		m.keys.Mark.SetEnabled(msg.view.Position.Found())
		if msg.view.Complete {
			m.status = "Course complete!"
			if msg.view.CertificateID != "" {
				m.status += " Certificate " + msg.view.CertificateID
			}
		}
		m.render()
		return m, nil

	case markedMsg:
		if msg.err != nil {
			m.status = "Could not mark complete: " + msg.err.Error()
			return m, nil
		}
		m.status = "Marked complete"
		return m, m.load()

	case navigatedMsg:
		if msg.err != nil {
			m.status = "Navigation failed: " + msg.err.Error()
			return m, nil
		}
		if msg.target == nil {
			return m, nil
		}
		m.current = msg.target.Activity.ActivityUUID
		m.status = "→ " + msg.url
		m.vp.GotoTop()
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.navigate(service.Next)
		case key.Matches(msg, m.keys.Prev):
			return m, m.navigate(service.Prev)
		case key.Matches(msg, m.keys.Mark):
			return m, m.markComplete()
		case key.Matches(msg, m.keys.Up):
			m.vp.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.vp.ScrollDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.vp.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.vp.PageDown()
		}
		m.observeNav()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.observeNav()
	return m, cmd
}

// render rebuilds the viewport content for the current snapshot.
func (m *playerModel) render() {
	if m.view == nil || m.width == 0 {
		return
	}
	v := m.view

	var body string
	if v.Position.Found() {
		ref := *v.Sequence.At(v.Position.Index)
		state := progress.StatePending
		for _, ch := range v.Chapters {
			for _, ind := range ch.Indicators {
				if ind.Ref.CleanUUID == ref.CleanUUID {
					state = ind.State
				}
			}
		}
		body = formatter.FormatActivityBody(ref, state, v.CurrentURL)
	} else {
		body = formatter.Dim("Pick an activity to start.") + "\n"
	}
	body = lipgloss.NewStyle().Width(m.width).Render(body)

	content := body + "\n\n" +
		strings.TrimRight(formatter.FormatCourseEnd(v.Course.Name, v.Progress, v.Complete, v.CertificateID), "\n") + "\n\n"
	m.navLine = lipgloss.Height(content) - 1
	content += formatter.FormatNavRow(v.Position.Prev, v.Position.Next, m.width)

	m.vp.SetContent(content)
	m.observeNav()
}

// observeNav feeds the inline row's visibility to the nav display.
func (m *playerModel) observeNav() {
	visible := m.navLine >= m.vp.YOffset && m.navLine < m.vp.YOffset+m.vp.Height
	m.nav.Observe(visible)
}

func (m playerModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" + formatter.Dim("q to quit") + "\n"
	}
	if m.view == nil {
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	p := m.view.Progress
	b.WriteString(formatter.StyleHeader.Render(m.view.Course.Name) + "  " +
		formatter.Dim(fmt.Sprintf("%d/%d · %d%%", p.Completed, p.Total, p.Percentage)) + "\n")
	b.WriteString(m.vp.View() + "\n")

	if m.nav.Mode() == progress.NavFloating {
		b.WriteString(formatter.FormatFloatingNav(m.view.Position.Prev, m.view.Position.Next, m.width) + "\n")
	} else {
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys) + "\n")
	b.WriteString(formatter.Dim(m.status))
	return b.String()
}

// firstOpenActivity returns the first activity not yet done, or the first
// activity when every one is done. Empty when the course has none.
func firstOpenActivity(v *service.CourseProgressView) string {
	for _, ch := range v.Chapters {
		for _, ind := range ch.Indicators {
			if ind.State != progress.StateDone {
				return ind.Ref.Activity.ActivityUUID
			}
		}
	}
	if first := v.Sequence.First(); first != nil {
		return first.Activity.ActivityUUID
	}
	return ""
}
