package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	humanize "github.com/dustin/go-humanize"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/task"
	"todo/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmClear
)

type noticeExpiredMsg struct{ id int }

type freshExpiredMsg struct{ id string }

type Model struct {
	ctrl   *app.Controller
	cfg    config.Config
	keys   keyMap
	help   help.Model
	input  textinput.Model
	editor textarea.Model
	mode   mode
	cursor int
	status string

	// editOriginal is the stored text of the task being edited and
	// editLoaded what the textarea made of it. The textarea rewrites tabs
	// and control characters, so an untouched edit saves editOriginal.
	editOriginal string
	editLoaded   string
}

func New(ctrl *app.Controller, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task"
	ti.Width = 40

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return Model{
		ctrl:   ctrl,
		cfg:    cfg,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		input:  ti,
		editor: ta,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit.", cfg.Keys.Add, helpLabel(config.Keys(cfg.Keys.Toggle)), cfg.Keys.Edit),
	}
}

func Run(ctrl *app.Controller, cfg config.Config, opts ...tea.ProgramOption) error {
	program := tea.NewProgram(New(ctrl, cfg), opts...)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var (
			next tea.Model
			cmd  tea.Cmd
		)
		switch m.mode {
		case modeAdd:
			next, cmd = m.updateAddMode(msg)
		case modeEdit:
			next, cmd = m.updateEditMode(msg)
		case modeConfirmClear:
			next, cmd = m.updateClearConfirm(msg)
		default:
			next, cmd = m.updateListMode(msg)
		}
		nm := next.(Model)
		nm.cursor = clampCursor(nm.cursor, len(nm.ctrl.View().Tasks))
		return nm, cmd
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
		m.editor.SetWidth(max(msg.Width-10, 10))
		m.help.Width = msg.Width
	case noticeExpiredMsg:
		m.ctrl.ExpireNotice(msg.id)
	case freshExpiredMsg:
		m.ctrl.ExpireFresh(msg.id)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		out := m.ctrl.Dispatch(app.Add{Text: m.input.Value()})
		if !out.OK {
			return m, m.expireNotice(out)
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Added task"
		m.cursor = m.indexOnPage(out.Fresh)
		return m, m.expireFresh(out)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Dispatch(app.Cancel{})
		m.leaveEdit()
		m.status = "Edit cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		text := m.editor.Value()
		if text == m.editLoaded {
			text = m.editOriginal
		}
		out := m.ctrl.Dispatch(app.Save{Text: text})
		if _, still := m.ctrl.Editing(); still {
			return m, m.expireNotice(out)
		}
		m.leaveEdit()
		if out.OK {
			m.status = "Saved task"
		}
		return m, m.expireNotice(out)
	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
}

func (m *Model) leaveEdit() {
	m.editor.Blur()
	m.editor.Reset()
	m.editOriginal, m.editLoaded = "", ""
	m.mode = modeList
}

func (m Model) updateClearConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeList
		m.status = "Clear cancelled"
		return m, nil
	}
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		out := m.ctrl.Dispatch(app.ClearFiltered{})
		if out.OK {
			m.status = fmt.Sprintf("Deleted %s", countLabel(out.Removed))
			m.cursor = 0
		}
		return m, m.expireNotice(out)
	case "n", "N":
		m.mode = modeList
		m.status = "Clear cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.ctrl.View()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(page.Tasks))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(page.Tasks))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.status = "Add mode: type a task and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		t, ok := selected(page, m.cursor)
		if !ok {
			return m, nil
		}
		out := m.ctrl.Dispatch(app.Toggle{ID: t.ID, Completed: !t.Completed})
		if out.OK {
			m.status = "Toggled task"
		}
		return m, m.expireNotice(out)
	case key.Matches(msg, m.keys.Delete):
		t, ok := selected(page, m.cursor)
		if !ok {
			return m, nil
		}
		m.ctrl.Dispatch(app.Delete{ID: t.ID})
		m.status = fmt.Sprintf("Deleted \"%s\"", t.Text)
	case key.Matches(msg, m.keys.Edit):
		t, ok := selected(page, m.cursor)
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		out := m.ctrl.Dispatch(app.Edit{ID: t.ID})
		if !out.OK {
			return m, m.expireNotice(out)
		}
		m.mode = modeEdit
		m.editor.SetValue(t.Text)
		m.editOriginal, m.editLoaded = t.Text, m.editor.Value()
		m.status = "Editing: Enter to save, Esc to cancel"
		cmd := m.editor.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		if page.Total == 0 {
			out := m.ctrl.Dispatch(app.ClearFiltered{})
			return m, m.expireNotice(out)
		}
		m.mode = modeConfirmClear
		m.status = fmt.Sprintf("Delete %s (%s)? y/n", countLabel(page.Total), m.ctrl.Filter())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(view.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(view.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(view.FilterCompleted)
	case key.Matches(msg, m.keys.FilterNext):
		m.setFilter(m.ctrl.Filter().Next())
	case key.Matches(msg, m.keys.PrevPage):
		m.ctrl.Dispatch(app.PrevPage{})
		m.cursor = 0
	case key.Matches(msg, m.keys.NextPage):
		m.ctrl.Dispatch(app.NextPage{})
		m.cursor = 0
	}
	return m, nil
}

func (m *Model) setFilter(f view.Filter) {
	m.ctrl.Dispatch(app.SetFilter{Filter: f})
	m.cursor = 0
	m.status = "Showing " + string(f)
}

func (m Model) expireNotice(out app.Outcome) tea.Cmd {
	if out.Notice == "" {
		return nil
	}
	id := out.NoticeID
	return tea.Tick(m.cfg.NoticeDuration(), func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m Model) expireFresh(out app.Outcome) tea.Cmd {
	if out.Fresh == "" {
		return nil
	}
	id := out.Fresh
	return tea.Tick(m.cfg.AnimationDuration(), func(time.Time) tea.Msg {
		return freshExpiredMsg{id: id}
	})
}

// indexOnPage returns the row of id on the current page, or 0.
func (m Model) indexOnPage(id string) int {
	for i, t := range m.ctrl.View().Tasks {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	page := m.ctrl.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if page.Total == 0 {
		b.WriteString(emptyText(m.ctrl.Filter(), m.cfg.Keys.Add))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList(page))
	}

	b.WriteString("\n")
	b.WriteString(countStyle.Render(countLabel(page.Total)))
	if p := renderPagination(page); p != "" {
		b.WriteString("   ")
		b.WriteString(p)
	}
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("\nAdd Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if n := m.ctrl.Notice(); n != "" {
		b.WriteString(noticeStyle.Render(n))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(savedLabel(m.ctrl.Store().LastSaved())))
	b.WriteString("\n")
	if m.mode == modeEdit {
		b.WriteString(m.help.View(editKeys(m.keys)))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(view.Filters()))
	for _, f := range view.Filters() {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.ctrl.Filter() {
			tabs = append(tabs, activeTabStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderTaskList(page view.Page) string {
	editing, isEditing := m.ctrl.Editing()
	var b strings.Builder
	for i, t := range page.Tasks {
		cursor := " "
		if m.cursor == i && (m.mode == modeList || m.mode == modeConfirmClear) {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		if isEditing && m.mode == modeEdit && t.ID == editing {
			b.WriteString(fmt.Sprintf("%s %s editing:\n", cursorStyle.Render(">"), checkbox))
			b.WriteString(m.editor.View())
			b.WriteString("\n")
			continue
		}

		text := strings.ReplaceAll(t.Text, "\n", " ⏎ ")
		switch {
		case t.ID == m.ctrl.Fresh():
			text = freshStyle.Render(text)
		case t.Completed:
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

// renderPagination draws ‹ 1 [2] 3 › when there is more than one page.
func renderPagination(p view.Page) string {
	if !p.Paginated() {
		return ""
	}
	parts := make([]string, 0, p.TotalPages+2)
	if p.HasPrev() {
		parts = append(parts, pageStyle.Render("‹"))
	} else {
		parts = append(parts, disabledStyle.Render("‹"))
	}
	for i := 1; i <= p.TotalPages; i++ {
		if i == p.Number {
			parts = append(parts, currentPageStyle.Render(fmt.Sprintf("[%d]", i)))
		} else {
			parts = append(parts, pageStyle.Render(fmt.Sprintf("%d", i)))
		}
	}
	if p.HasNext() {
		parts = append(parts, pageStyle.Render("›"))
	} else {
		parts = append(parts, disabledStyle.Render("›"))
	}
	return strings.Join(parts, " ")
}

func emptyText(f view.Filter, addKey string) string {
	switch f {
	case view.FilterActive:
		return "Nothing left to do."
	case view.FilterCompleted:
		return "No completed tasks."
	default:
		return fmt.Sprintf("No tasks yet. Press '%s' to add one.", addKey)
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return humanize.Comma(int64(n)) + " tasks"
}

func savedLabel(t time.Time) string {
	if t.IsZero() {
		return "not saved yet"
	}
	return "saved " + humanize.Time(t)
}

func selected(p view.Page, cursor int) (task.Task, bool) {
	if len(p.Tasks) == 0 {
		return task.Task{}, false
	}
	return p.Tasks[clampCursor(cursor, len(p.Tasks))], true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
