package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	UserTag   lipgloss.Style
	BotTag    lipgloss.Style
	UserText  lipgloss.Style
	Prompt    lipgloss.Style
	Spinner   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Separator lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1),
		UserTag:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		BotTag:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		UserText:  lipgloss.NewStyle().PaddingLeft(2),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
