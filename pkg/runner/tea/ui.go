package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/glyph"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/printers"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeFocus
	modeHelp
)

const normalHelp = "h/l day  j/k month  t today  enter edit  x delete  f focus  space done  c clear  s style  ? help  q quit"

var editTypes = []state.AnnotationType{state.TypeJournal, state.TypeMilestone, state.TypeNone}

// Model contains UI state
type Model struct {
	svc    *app.Service
	ctx    context.Context
	policy countdown.Policy
	theme  Theme
	mode   mode

	slots     []grid.DaySlot
	countdown countdown.Countdown
	focus     state.FocusRecord
	style     state.TodayStyle

	cursor int // 1-based day of year
	draft  app.Draft
	input  textinput.Model

	status string
	err    error

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service, policy countdown.Policy) Model {
	ti := textinput.New()
	ti.Placeholder = "..."
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		svc:    svc,
		ctx:    context.Background(),
		policy: policy,
		theme:  DefaultTheme(),
		mode:   modeNormal,
		input:  ti,
		status: normalHelp,
	}
}

// messages
type errMsg struct{ err error }
type loadedMsg struct {
	slots     []grid.DaySlot
	countdown countdown.Countdown
	focus     state.FocusRecord
	style     state.TodayStyle
	status    string
}

// reloadedMsg is sent when the document changed outside this program.
type reloadedMsg struct{}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return m.load("")
}

// load re-derives everything from the service and reports status when done.
func (m Model) load(status string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		slots, err := svc.Grid(ctx)
		if err != nil {
			return errMsg{err}
		}
		c, err := svc.Countdown(ctx)
		if err != nil {
			return errMsg{err}
		}
		f, err := svc.Focus(ctx)
		if err != nil {
			return errMsg{err}
		}
		style, err := svc.TodayStyle(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{slots: slots, countdown: c, focus: f, style: style, status: status}
	}
}

// mutate runs fn against the service and reloads on success.
func (m Model) mutate(status string, fn func(svc *app.Service, ctx context.Context) error) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	reload := m.load(status)
	return func() tea.Msg {
		if err := fn(svc, ctx); err != nil {
			return errMsg{err}
		}
		return reload()
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case loadedMsg:
		m.slots = msg.slots
		m.countdown = msg.countdown
		m.focus = msg.focus
		m.style = msg.style
		m.err = nil
		if m.cursor == 0 || m.cursor > len(m.slots) {
			m.cursor = m.countdown.Day
		}
		if msg.status != "" {
			m.status = msg.status
		}
		return m, nil

	case reloadedMsg:
		return m, m.load("reloaded from disk")

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		case modeEdit:
			return m.updateEdit(msg)
		case modeFocus:
			return m.updateFocus(msg)
		}
		return m.updateNormal(msg)
	}

	// Cursor blink ticks belong to the input while it is open.
	if m.mode == modeEdit || m.mode == modeFocus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch keyName(msg) {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "h", "left":
		m.moveDays(-1)
	case "l", "right":
		m.moveDays(1)
	case "k", "up":
		m.moveMonths(-1)
	case "j", "down":
		m.moveMonths(1)
	case "t":
		m.cursor = m.countdown.Day
	case "enter", "e":
		// Nothing is selectable until the first load lands.
		if len(m.slots) == 0 {
			return m, nil
		}
		d, err := m.svc.Open(m.ctx, m.cursor, m.countdown.Year)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.draft = d
		m.mode = modeEdit
		m.status = "editing: type a note, tab cycles type, enter saves, esc cancels"
		return m, m.openInput(d.Note)
	case "x", "d":
		if len(m.slots) == 0 {
			return m, nil
		}
		day, year := m.cursor, m.countdown.Year
		return m, m.mutate(fmt.Sprintf("cleared day %d", day), func(svc *app.Service, ctx context.Context) error {
			return svc.Delete(ctx, day, year)
		})
	case "f":
		m.mode = modeFocus
		m.status = "focus: type today's focus, enter sets, esc cancels"
		return m, m.openInput(m.focus.Text)
	case "space":
		return m, m.mutate("", func(svc *app.Service, ctx context.Context) error {
			_, err := svc.ToggleFocus(ctx)
			return err
		})
	case "c":
		return m, m.mutate("focus cleared", func(svc *app.Service, ctx context.Context) error {
			return svc.ClearFocus(ctx)
		})
	case "s":
		next := nextStyle(m.style)
		return m, m.mutate("today style: "+string(next), func(svc *app.Service, ctx context.Context) error {
			return svc.SetTodayStyle(ctx, next)
		})
	}
	return m, nil
}

// openInput fills the input with value and focuses it.
func (m *Model) openInput(value string) tea.Cmd {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m Model) updateEdit(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch keyName(msg) {
	case "esc":
		m.input.Blur()
		m.mode = modeNormal
		m.status = normalHelp
		return m, nil
	case "tab":
		m.draft.Type = cycleType(m.draft.Type)
		return m, nil
	case "enter":
		d := m.draft
		d.Note = m.input.Value()
		m.input.Blur()
		m.mode = modeNormal
		return m, m.mutate(fmt.Sprintf("saved day %d", d.Day), func(svc *app.Service, ctx context.Context) error {
			return svc.Save(ctx, d)
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFocus(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch keyName(msg) {
	case "esc":
		m.input.Blur()
		m.mode = modeNormal
		m.status = normalHelp
		return m, nil
	case "enter":
		text := m.input.Value()
		m.input.Blur()
		m.mode = modeNormal
		return m, m.mutate("focus set", func(svc *app.Service, ctx context.Context) error {
			return svc.SetFocus(ctx, text)
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) moveDays(n int) {
	next := m.cursor + n
	if next < 1 || next > len(m.slots) {
		return
	}
	m.cursor = next
}

// moveMonths keeps the day of month, clamped to the target month.
func (m *Model) moveMonths(n int) {
	if len(m.slots) == 0 {
		return
	}
	t, err := timeutil.ParseDate(m.slots[m.cursor-1].Date)
	if err != nil {
		return
	}
	month := t.Month() + time.Month(n)
	if month < time.January || month > time.December {
		return
	}
	last := time.Date(t.Year(), month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	m.cursor = time.Date(t.Year(), month, day, 0, 0, 0, 0, time.UTC).YearDay()
}

func nextStyle(current state.TodayStyle) state.TodayStyle {
	styles := state.TodayStyles()
	for i, s := range styles {
		if s == current {
			return styles[(i+1)%len(styles)]
		}
	}
	return state.DefaultTodayStyle
}

func cycleType(current state.AnnotationType) state.AnnotationType {
	for i, t := range editTypes {
		if t == current {
			return editTypes[(i+1)%len(editTypes)]
		}
	}
	return editTypes[0]
}

// View renders the year, the selected day and the current mode.
func (m Model) View() string {
	if m.mode == modeHelp {
		return m.theme.Panel.Frame.Render(m.helpText())
	}

	head, second := m.countdown.Lines(m.policy)
	lines := []string{m.theme.Header.Headline.Render(head)}
	if second != "" {
		lines = append(lines, m.theme.Header.Secondary.Render(second))
	}
	lines = append(lines,
		m.theme.Header.Secondary.Render(fmt.Sprintf("%d · %s complete", m.countdown.Year, m.countdown.PercentLine())),
		"",
		m.renderGrid(),
		"",
	)

	if slot, ok := grid.Slot(m.slots, m.cursor); ok {
		lines = append(lines, m.theme.Panel.Title.Render(slot.Title)+"  "+m.theme.Panel.Faint.Render(slot.Date))
	}

	switch m.mode {
	case modeEdit:
		lines = append(lines,
			fmt.Sprintf("type: %s", m.theme.Panel.Title.Render(m.draft.Type.String())),
			"note: "+m.input.View(),
		)
	case modeFocus:
		lines = append(lines, "focus: "+m.input.View())
	default:
		lines = append(lines, m.renderFocus())
	}

	lines = append(lines, "")
	if m.err != nil {
		lines = append(lines, m.theme.Footer.Error.Render("error: "+m.err.Error()))
	}
	lines = append(lines, m.theme.Footer.Status.Render(m.status))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderGrid() string {
	rows := make([]string, 0, 12)
	var (
		month time.Month
		row   strings.Builder
	)
	for _, s := range m.slots {
		t, err := timeutil.ParseDate(s.Date)
		if err != nil {
			continue
		}
		if t.Month() != month {
			if month != 0 {
				rows = append(rows, row.String())
				row.Reset()
			}
			month = t.Month()
			row.WriteString(m.theme.Grid.Month.Render(fmt.Sprintf("%-4s", month.String()[:3])))
		}
		dot := m.theme.Grid.Dot(s)
		if s.Day == m.cursor {
			dot = dot.Reverse(true)
		}
		row.WriteString(dot.Render(printers.DotSymbol(s)))
		row.WriteString(" ")
	}
	if row.Len() > 0 {
		rows = append(rows, row.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderFocus() string {
	if !m.focus.IsSet() {
		return m.theme.Panel.Faint.Render("focus: none (f to set)")
	}
	if m.focus.Completed {
		return "focus: " + m.theme.Panel.Faint.Render(m.focus.Text) + " ✓"
	}
	return "focus: " + m.theme.Panel.Title.Render(m.focus.Text)
}

func (m Model) helpText() string {
	var b strings.Builder
	b.WriteString(m.theme.Panel.Title.Render("dots") + "\n\n")
	rows := [][2]string{
		{"h / l", "previous / next day"},
		{"k / j", "previous / next month"},
		{"t", "jump to today"},
		{"enter", "edit the selected day"},
		{"x", "delete the selected day's note"},
		{"f", "set today's focus"},
		{"space", "toggle focus done"},
		{"c", "clear focus"},
		{"s", "cycle today style"},
		{"q", "quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-7s %s\n", r[0], r[1])
	}
	b.WriteString("\n")
	for _, g := range glyph.DefaultDots() {
		fmt.Fprintf(&b, "%s %s\n", g.Symbol, g.Meaning)
	}
	b.WriteString(m.theme.Panel.Faint.Render("\nany key closes help"))
	return b.String()
}

// keyName maps a key press to the names the bindings use.
func keyName(msg tea.KeyPressMsg) string {
	if msg.Mod&tea.ModCtrl != 0 && msg.Code == 'c' {
		return "ctrl+c"
	}
	switch msg.Code {
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEscape:
		return "esc"
	case tea.KeyTab:
		return "tab"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeySpace:
		return "space"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	}
	return msg.Text
}
