package ui

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/view"
)

func newModel(t *testing.T, texts ...string) Model {
	t.Helper()
	return newModelWithConfig(t, config.Default(), texts...)
}

func newModelWithConfig(t *testing.T, cfg config.Config, texts ...string) Model {
	t.Helper()
	next := 0
	store := task.NewStore(storage.NewSnapshot(storage.NewMemory(), "", nil), task.WithIDFunc(func() string {
		next++
		return strconv.Itoa(next)
	}))
	for _, text := range texts {
		if _, err := store.Add(text); err != nil {
			t.Fatal(err)
		}
	}
	return New(app.New(store, app.WithPageSize(cfg.PageSize)), cfg)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestAddTask(t *testing.T) {
	m := newModel(t)

	m, _ = press(t, m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	m = typeText(t, m, "buy milk")
	m, cmd := press(t, m, "enter")

	if m.mode != modeList {
		t.Errorf("mode = %v, want list", m.mode)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if cmd == nil {
		t.Error("expected entry highlight timer")
	}
	if m.ctrl.Fresh() != "1" {
		t.Errorf("Fresh() = %q, want 1", m.ctrl.Fresh())
	}
	if !strings.Contains(m.View(), "[ ] buy milk") {
		t.Errorf("view missing task:\n%s", m.View())
	}
}

func TestAddEmptyKeepsInputAndShowsNotice(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "a")
	m = typeText(t, m, "   ")
	m, cmd := press(t, m, "enter")

	if m.mode != modeAdd {
		t.Errorf("mode = %v, want add", m.mode)
	}
	if m.input.Value() != "   " {
		t.Errorf("input changed to %q", m.input.Value())
	}
	if cmd == nil {
		t.Fatal("expected notice expiry timer")
	}
	if !strings.Contains(m.View(), "Task cannot be empty") {
		t.Errorf("notice missing:\n%s", m.View())
	}
	if m.ctrl.Store().Len() != 0 {
		t.Error("empty task stored")
	}
}

func TestNoticeExpiresOnMessage(t *testing.T) {
	m := newModel(t)
	m, _ = press(t, m, "a", "enter")
	if m.ctrl.Notice() == "" {
		t.Fatal("no notice raised")
	}
	next, _ := m.Update(noticeExpiredMsg{id: 1})
	m = next.(Model)
	if m.ctrl.Notice() != "" {
		t.Errorf("notice still shown: %q", m.ctrl.Notice())
	}
}

func TestToggleAndFilterTabs(t *testing.T) {
	m := newModel(t, "buy milk", "call mum")

	m, _ = press(t, m, " ")
	if got, _ := m.ctrl.Store().Get("1"); !got.Completed {
		t.Fatal("first task not completed")
	}

	m, _ = press(t, m, "2")
	if m.ctrl.Filter() != view.FilterActive {
		t.Fatalf("filter = %v", m.ctrl.Filter())
	}
	out := m.View()
	if strings.Contains(out, "buy milk") || !strings.Contains(out, "call mum") {
		t.Errorf("active view wrong:\n%s", out)
	}
	if !strings.Contains(out, "1 task") {
		t.Errorf("count label should show filtered total:\n%s", out)
	}

	m, _ = press(t, m, "tab")
	if m.ctrl.Filter() != view.FilterCompleted {
		t.Errorf("tab gave filter %v", m.ctrl.Filter())
	}
	if !strings.Contains(m.View(), "[x] buy milk") {
		t.Errorf("completed view wrong:\n%s", m.View())
	}
}

func TestDeleteSelected(t *testing.T) {
	m := newModel(t, "one", "two", "three")
	m, _ = press(t, m, "j", "d")
	if m.ctrl.Store().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.ctrl.Store().Len())
	}
	if _, ok := m.ctrl.Store().Get("2"); ok {
		t.Error("wrong task deleted")
	}
}

func TestEditSaveAndCancel(t *testing.T) {
	m := newModel(t, "buy milk")

	m, _ = press(t, m, "e")
	if m.mode != modeEdit {
		t.Fatalf("mode = %v, want edit", m.mode)
	}
	if m.editor.Value() != "buy milk" {
		t.Errorf("editor not pre-filled: %q", m.editor.Value())
	}

	m.editor.SetValue("")
	m, _ = press(t, m, "enter")
	if m.mode != modeEdit {
		t.Error("empty save left edit mode")
	}
	if got, _ := m.ctrl.Store().Get("1"); got.Text != "buy milk" {
		t.Errorf("text changed to %q", got.Text)
	}

	m.editor.SetValue("buy oat milk")
	m, _ = press(t, m, "enter")
	if m.mode != modeList {
		t.Errorf("mode = %v after save", m.mode)
	}
	if got, _ := m.ctrl.Store().Get("1"); got.Text != "buy oat milk" {
		t.Errorf("text = %q", got.Text)
	}

	m, _ = press(t, m, "e")
	m.editor.SetValue("discard me")
	m, _ = press(t, m, "esc")
	if m.mode != modeList {
		t.Errorf("mode = %v after cancel", m.mode)
	}
	if got, _ := m.ctrl.Store().Get("1"); got.Text != "buy oat milk" {
		t.Errorf("cancel changed text to %q", got.Text)
	}
}

func TestEditLongTaskUnchanged(t *testing.T) {
	tests := map[string]string{
		"long line":      strings.Repeat("x", 300),
		"multiline tabs": strings.Repeat("word\tword ", 30) + "\n" + strings.Repeat("y", 300),
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			m := newModel(t, text)
			m, _ = press(t, m, "e")
			if !strings.Contains(text, "\t") && m.editor.Value() != text {
				t.Errorf("editor holds %d chars, want %d", len(m.editor.Value()), len(text))
			}
			m, _ = press(t, m, "enter")
			if m.mode != modeList {
				t.Fatalf("mode = %v after save", m.mode)
			}
			got, _ := m.ctrl.Store().Get("1")
			if got.Text != text {
				t.Errorf("untouched edit changed text: len %d -> %d", len(text), len(got.Text))
			}
		})
	}
}

func TestEditLongTaskAppend(t *testing.T) {
	text := strings.Repeat("x", 300)
	m := newModel(t, text)
	m, _ = press(t, m, "e")
	m = typeText(t, m, "!")
	m, _ = press(t, m, "enter")
	got, _ := m.ctrl.Store().Get("1")
	if len(got.Text) != 301 || !strings.HasPrefix(got.Text, text) {
		t.Errorf("text len = %d, want 301", len(got.Text))
	}
}

func TestAddLongTask(t *testing.T) {
	text := strings.Repeat("z", 300)
	m := newModel(t)
	m, _ = press(t, m, "a")
	m = typeText(t, m, text)
	m, _ = press(t, m, "enter")
	got, ok := m.ctrl.Store().Get("1")
	if !ok || got.Text != text {
		t.Errorf("stored %d chars, want %d", len(got.Text), len(text))
	}
}

func TestEditAltEnterInsertsNewline(t *testing.T) {
	m := newModel(t, "line one")
	m, _ = press(t, m, "e", "alt+enter")
	if m.mode != modeEdit {
		t.Fatalf("alt+enter left edit mode")
	}
	if !strings.Contains(m.editor.Value(), "\n") {
		t.Errorf("no newline inserted: %q", m.editor.Value())
	}
}

func TestClearWithConfirm(t *testing.T) {
	m := newModel(t, "a", "b", "c")
	m, _ = press(t, m, " ", "3", "C")
	if m.mode != modeConfirmClear {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m, _ = press(t, m, "y")
	if m.ctrl.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.ctrl.Store().Len())
	}
	if _, ok := m.ctrl.Store().Get("1"); ok {
		t.Error("completed task survived")
	}
}

func TestClearNothingShowsNotice(t *testing.T) {
	m := newModel(t, "a")
	m, cmd := press(t, m, "3", "C")
	if m.mode != modeList {
		t.Errorf("mode = %v, want list", m.mode)
	}
	if cmd == nil || !strings.Contains(m.View(), "No tasks to delete") {
		t.Errorf("missing notice:\n%s", m.View())
	}
}

func TestClearDeclined(t *testing.T) {
	m := newModel(t, "a")
	m, _ = press(t, m, "C", "n")
	if m.ctrl.Store().Len() != 1 {
		t.Error("declined clear deleted tasks")
	}
}

func TestClearConfirmUsesCancelKey(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Cancel = "x"
	m := newModelWithConfig(t, cfg, "a")

	m, _ = press(t, m, "C")
	if m.mode != modeConfirmClear {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m, _ = press(t, m, "x")
	if m.mode != modeList {
		t.Errorf("remapped cancel did not leave confirm: mode = %v", m.mode)
	}
	if m.ctrl.Store().Len() != 1 {
		t.Error("cancelled clear deleted tasks")
	}
}

func TestPagination(t *testing.T) {
	texts := make([]string, 14)
	for i := range texts {
		texts[i] = "task " + strconv.Itoa(i+1)
	}
	m := newModel(t, texts...)

	out := m.View()
	if !strings.Contains(out, "[1] 2 3") {
		t.Errorf("pagination missing:\n%s", out)
	}
	if !strings.Contains(out, "14 tasks") {
		t.Errorf("count missing:\n%s", out)
	}

	m, _ = press(t, m, "l", "l", "l")
	if m.ctrl.Page() != 3 {
		t.Fatalf("page = %d, want 3", m.ctrl.Page())
	}
	out = m.View()
	if !strings.Contains(out, "task 13") || !strings.Contains(out, "task 14") || strings.Contains(out, "task 12") {
		t.Errorf("page 3 content wrong:\n%s", out)
	}

	m, _ = press(t, m, "h")
	if m.ctrl.Page() != 2 {
		t.Errorf("page = %d, want 2", m.ctrl.Page())
	}
}

func TestNoPaginationForSinglePage(t *testing.T) {
	m := newModel(t, "only")
	if strings.Contains(m.View(), "‹") {
		t.Errorf("pagination shown for one page:\n%s", m.View())
	}
}

func TestCursorClampedAfterDelete(t *testing.T) {
	m := newModel(t, "a", "b")
	m, _ = press(t, m, "j", "d")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestRenderPagination(t *testing.T) {
	tasks := make([]task.Task, 14)
	for i := range tasks {
		tasks[i] = task.Task{ID: strconv.Itoa(i), Text: "t"}
	}
	tests := []struct {
		page int
		want string
	}{
		{1, "‹ [1] 2 3 ›"},
		{2, "‹ 1 [2] 3 ›"},
		{3, "‹ 1 2 [3] ›"},
	}
	for _, tt := range tests {
		got := renderPagination(view.Derive(tasks, view.FilterAll, tt.page, 6))
		if got != tt.want {
			t.Errorf("page %d: got %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestCountLabel(t *testing.T) {
	tests := map[int]string{0: "0 tasks", 1: "1 task", 2: "2 tasks", 1200: "1,200 tasks"}
	for n, want := range tests {
		if got := countLabel(n); got != want {
			t.Errorf("countLabel(%d) = %q, want %q", n, got, want)
		}
	}
}
