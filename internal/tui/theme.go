package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tabsel/internal/config"
)

// Theme holds the resolved lipgloss styles for one session. It is built
// from configuration at startup and threaded through rendering; there is
// no process-wide theme state.
type Theme struct {
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Selected    lipgloss.Style
	FilterLabel lipgloss.Style
	FilterText  lipgloss.Style
	Status      lipgloss.Style
}

// NewTheme resolves config colors into styles.
func NewTheme(cfg config.ThemeConfig) Theme {
	return Theme{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Header)),
		Cell:        lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Text)),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Text)).Background(lipgloss.Color(cfg.Selection)).Bold(true),
		FilterLabel: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Accent)),
		FilterText:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Text)),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Dim)),
	}
}
