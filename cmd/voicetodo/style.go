package main

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
)
