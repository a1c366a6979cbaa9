// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the terminal front end of the citation catalog. It renders
// the controller's screen state with bubbletea and runs every controller
// call as a tea.Cmd so the event loop never blocks on the network.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/cite-catalog/internal/controller"
	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// mode is what the main view's keys currently drive.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
	modeExport
)

// opDoneMsg reports a finished controller call.
type opDoneMsg struct {
	op  string
	err error
}

// expiredMsg asks for a redraw after notifications may have expired.
type expiredMsg struct{}

// Notifications supplies the live notification list.
type Notifications interface {
	Active() []notify.Notification
	TTL() time.Duration
}

// Model is the bubbletea model of the catalog TUI.
type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	notices Notifications
	loc     *messages.Localizer
	keys    KeyMap
	styles  Styles

	mode    mode
	cursor  int
	pending string // citation id awaiting delete confirmation
	search  textinput.Model
	spinner spinner.Model
	form    *formModel

	width, height int
}

// NewModel returns a Model over ctrl. Controller calls use ctx.
func NewModel(ctx context.Context, ctrl *controller.Controller, notices Notifications) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		notices: notices,
		loc:     ctrl.Localizer(),
		keys:    DefaultKeyMap,
		styles:  DefaultStyles(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, notices Notifications) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, notices), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init loads the catalog and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run("load", m.ctrl.LoadAll))
}

func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		if msg.op == "save" && m.form != nil && m.ctrl.Screen().Edit.Mode == controller.DialogClosed {
			m.form = nil
		}
		m.clampCursor()
		return m, m.expiryTick()

	case expiredMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// Cursor blink and similar input messages.
	switch {
	case m.form != nil:
		return m, m.form.update(msg)
	case m.mode == modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// expiryTick schedules a redraw once the newest notification has expired.
func (m Model) expiryTick() tea.Cmd {
	if m.notices == nil || len(m.notices.Active()) == 0 {
		return nil
	}
	return tea.Tick(m.notices.TTL()+50*time.Millisecond, func(time.Time) tea.Msg {
		return expiredMsg{}
	})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := m.ctrl.Screen()

	switch {
	case m.form != nil:
		return m.handleFormKey(msg)
	case screen.View.Open:
		return m.handleDetailKey(msg)
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeExport:
		return m.handleExportKey(msg)
	}
	return m.handleListKey(msg, screen)
}

func (m Model) handleListKey(msg tea.KeyMsg, screen controller.Screen) (tea.Model, tea.Cmd) {
	cards := screen.List.Cards
	selected := ""
	if m.cursor < len(cards) {
		selected = cards[m.cursor].ID
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.search.SetValue("")
		return m, m.run("load", m.ctrl.LoadAll)
	case key.Matches(msg, m.keys.Add):
		m.ctrl.OpenAdd()
		m.openForm()
	case key.Matches(msg, m.keys.Edit):
		if selected != "" && m.ctrl.EditByID(selected) {
			m.openForm()
		}
	case key.Matches(msg, m.keys.View):
		if selected != "" {
			return m, m.run("view", func(ctx context.Context) error {
				return m.ctrl.View(ctx, selected)
			})
		}
	case key.Matches(msg, m.keys.Delete):
		if selected != "" {
			m.pending = selected
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.Export):
		m.mode = modeExport
	}
	return m, nil
}

// handleSearchKey feeds the search bar and searches on every change.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.View) {
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	query := m.search.Value()
	if query == before {
		return m, cmd
	}
	m.cursor = 0
	return m, tea.Batch(cmd, m.run("search", func(ctx context.Context) error {
		return m.ctrl.Search(ctx, query)
	}))
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pending
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.mode, m.pending = modeList, ""
		// The prompt was already answered on screen.
		return m, m.run("delete", func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, id, controller.Confirmed)
		})
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
		m.mode, m.pending = modeList, ""
	}
	return m, nil
}

func (m Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	formats := []struct {
		binding key.Binding
		format  types.ExportFormat
	}{
		{m.keys.ExportJSON, types.ExportJSON},
		{m.keys.ExportBibTeX, types.ExportBibTeX},
		{m.keys.ExportCSV, types.ExportCSV},
		{m.keys.ExportCSL, types.ExportCSL},
	}
	for _, f := range formats {
		if key.Matches(msg, f.binding) {
			m.mode = modeList
			format := f.format
			return m, m.run("export", func(ctx context.Context) error {
				_, err := m.ctrl.Export(ctx, format)
				return err
			})
		}
	}
	if key.Matches(msg, m.keys.Back) {
		m.mode = modeList
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.ctrl.EditFromView() {
			m.openForm()
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.ctrl.CloseView()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.CloseEdit()
		m.form = nil
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		values := m.form.Values()
		return m, m.run("save", func(ctx context.Context) error {
			_, err := m.ctrl.Save(ctx, values)
			return err
		})
	case key.Matches(msg, m.keys.Next):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.form.move(-1)
		return m, nil
	}
	return m, m.form.update(msg)
}

// openForm builds the input form from the controller's edit dialog.
func (m *Model) openForm() {
	dialog := m.ctrl.Screen().Edit
	if dialog.Mode == controller.DialogClosed {
		return
	}
	m.form = newForm(dialog.Title, dialog.Form)
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Screen().List.Cards)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the screen.
func (m Model) View() string {
	screen := m.ctrl.Screen()
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Header.Render(m.loc.T(messages.AppName)))
	if screen.Loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(st.Stats.Render(m.statsLine(screen.List.Stats)))
	b.WriteString("\n")
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.form != nil:
		b.WriteString(m.form.view(m.loc, st))
	case screen.View.Open:
		b.WriteString(m.detailView(screen.View.Detail))
	default:
		b.WriteString(m.listView(screen))
	}
	b.WriteString("\n")

	switch m.mode {
	case modeConfirmDelete:
		b.WriteString(st.Prompt.Render(m.loc.T(messages.DeleteConfirm) + " [y/n]"))
		b.WriteString("\n")
	case modeExport:
		b.WriteString(st.Prompt.Render("export: " + helpLine(m.keys.ExportJSON, m.keys.ExportBibTeX, m.keys.ExportCSV, m.keys.ExportCSL, m.keys.Back)))
		b.WriteString("\n")
	}

	if m.notices != nil {
		for _, n := range m.notices.Active() {
			b.WriteString(st.notice(n.Level).Render("● " + n.Message))
			b.WriteString("\n")
		}
	}

	if m.form == nil && !screen.View.Open && m.mode == modeList {
		k := m.keys
		b.WriteString(st.Help.Render(helpLine(k.Search, k.View, k.Add, k.Edit, k.Delete, k.Export, k.Reload, k.Quit)))
	}
	return b.String()
}

func (m Model) statsLine(s viewmodel.Stats) string {
	return fmt.Sprintf("%s: %d   %s: %d   %s: %d   %s: %d",
		m.loc.T(messages.StatTotal), s.Total,
		m.loc.T(messages.StatRecent), s.ThisMonth,
		m.loc.T(messages.StatJournals), s.UniqueJournals,
		m.loc.T(messages.StatAvgYear), s.AvgYear)
}

func (m Model) listView(screen controller.Screen) string {
	st := m.styles
	if screen.List.NoResults {
		return st.Faint.Render(m.loc.T(messages.NoResults)) + "\n"
	}

	var b strings.Builder
	for i, card := range screen.List.Cards {
		marker := "  "
		if i == m.cursor {
			marker = st.Selected.Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(m.highlighted(card.Title, screen.Query, i == m.cursor))
		b.WriteString("\n")
		b.WriteString("  " + card.Authors + "\n")
		b.WriteString("  " + st.Faint.Render(card.JournalLine) + "\n")
		if card.MetaLine != "" {
			b.WriteString("  " + st.Faint.Render(card.MetaLine) + "\n")
		}
		if card.Abstract != "" {
			b.WriteString("  " + truncate(card.Abstract, m.abstractWidth()) + "\n")
		}
		if len(card.Keywords) > 0 {
			badges := make([]string, len(card.Keywords))
			for j, kw := range card.Keywords {
				badges[j] = st.Badge.Render(kw)
			}
			b.WriteString("  " + strings.Join(badges, " ") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// highlighted renders title with query matches marked.
func (m Model) highlighted(title, query string, selected bool) string {
	base := m.styles.Title
	if selected {
		base = m.styles.Selected
	}
	var b strings.Builder
	for _, seg := range viewmodel.Highlight(title, query) {
		if seg.Match {
			b.WriteString(m.styles.Match.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}

func (m Model) abstractWidth() int {
	if m.width > 10 {
		return m.width - 4
	}
	return 120
}

func (m Model) detailView(d viewmodel.Detail) string {
	st := m.styles
	var b strings.Builder
	b.WriteString(st.Title.Render(d.Title))
	b.WriteString("\n\n")
	for _, f := range d.Fields {
		value := f.Value
		if f.Link != "" {
			value = st.Link.Render(f.Link)
		}
		b.WriteString(st.Label.Render(f.Label) + value + "\n")
	}
	if d.Abstract != "" {
		b.WriteString("\n" + st.Label.Render(m.loc.T(messages.LabelAbstract)) + "\n")
		b.WriteString(d.Abstract + "\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Faint.Render(m.loc.T(messages.LabelCreated) + ": " + d.Created))
	b.WriteString("\n")
	b.WriteString(st.Faint.Render(m.loc.T(messages.LabelUpdated) + ": " + d.Updated))
	b.WriteString("\n\n")
	b.WriteString(st.Help.Render(helpLine(m.keys.Edit, m.keys.Back)))
	return st.Dialog.Render(b.String())
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

