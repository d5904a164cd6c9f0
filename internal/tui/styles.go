package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/jd-assistant/internal/results"
	"github.com/jonathan/jd-assistant/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	disabledSectionStyle = sectionStyle.BorderForeground(lipgloss.Color("240"))

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
)

var bandColors = map[results.ScoreBand]lipgloss.Color{
	results.BandPositive: lipgloss.Color("34"),
	results.BandCaution:  lipgloss.Color("214"),
	results.BandNegative: lipgloss.Color("196"),
}

func scoreStyle(band results.ScoreBand) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(bandColors[band]).
		Foreground(bandColors[band])
}

func statusStyle(kind types.StatusKind) lipgloss.Style {
	switch kind {
	case types.StatusSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	case types.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	}
}
