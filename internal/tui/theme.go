// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/cite-catalog/internal/notify"
)

// Styles is the visual palette. Colors are ANSI 256 codes.
type Styles struct {
	Header   lipgloss.Style
	Stats    lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Faint    lipgloss.Style
	Match    lipgloss.Style
	Badge    lipgloss.Style
	Link     lipgloss.Style
	Dialog   lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style
	Prompt   lipgloss.Style

	NoticeInfo    lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeError   lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Stats:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Title:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Match:    lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("229")),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24")).Padding(0, 1),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
		Dialog:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Width(14),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),

		NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		NoticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (s Styles) notice(level notify.Level) lipgloss.Style {
	switch level {
	case notify.Success:
		return s.NoticeSuccess
	case notify.Error:
		return s.NoticeError
	default:
		return s.NoticeInfo
	}
}
