package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	tabStyle         = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle   = tabStyle.Bold(true).Reverse(true)
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle        = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	freshStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	countStyle       = lipgloss.NewStyle().Faint(true)
	pageStyle        = lipgloss.NewStyle()
	currentPageStyle = lipgloss.NewStyle().Bold(true)
	disabledStyle    = lipgloss.NewStyle().Faint(true)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	footerStyle      = lipgloss.NewStyle().Faint(true)
)
