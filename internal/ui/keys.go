package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"todo/internal/config"
)

type keyMap struct {
	Quit            key.Binding
	Help            key.Binding
	Add             key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Edit            key.Binding
	Clear           key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	FilterNext      key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	Newline         key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:            binding(k.Quit, "quit", "ctrl+c"),
		Help:            binding("?", "more keys"),
		Add:             binding(k.Add, "add"),
		Up:              binding(k.Up, "up"),
		Down:            binding(k.Down, "down"),
		Toggle:          binding(k.Toggle, "toggle"),
		Delete:          binding(k.Delete, "delete"),
		Edit:            binding(k.Edit, "edit"),
		Clear:           binding(k.Clear, "clear filtered"),
		FilterAll:       binding(k.FilterAll, "all"),
		FilterActive:    binding(k.FilterActive, "active"),
		FilterCompleted: binding(k.FilterCompleted, "completed"),
		FilterNext:      binding(k.FilterNext, "next filter"),
		PrevPage:        binding(k.PrevPage, "prev page"),
		NextPage:        binding(k.NextPage, "next page"),
		Confirm:         binding(k.Confirm, "save"),
		Cancel:          binding(k.Cancel, "cancel"),
		Newline:         binding("alt+enter,ctrl+j", "newline"),
	}
}

// binding builds a key.Binding from a comma separated key list plus any
// always-on extras.
func binding(keys, desc string, extra ...string) key.Binding {
	ks := append(config.Keys(keys), extra...)
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(helpLabel(config.Keys(keys)), desc))
}

func helpLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			labels = append(labels, "space")
		case "up":
			labels = append(labels, "↑")
		case "down":
			labels = append(labels, "↓")
		case "left":
			labels = append(labels, "←")
		case "right":
			labels = append(labels, "→")
		default:
			labels = append(labels, k)
		}
	}
	return strings.Join(labels, "/")
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.FilterNext, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Add, k.Toggle, k.Edit, k.Delete, k.Clear},
		{k.FilterAll, k.FilterActive, k.FilterCompleted, k.FilterNext},
		{k.Help, k.Quit},
	}
}

// editKeys is shown while a task is being edited.
type editKeys keyMap

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Newline, k.Cancel}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
