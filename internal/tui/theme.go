package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors widgets render with.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Disabled lipgloss.Color
	Error    lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Disabled: lipgloss.Color("#334455"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Disabled: lipgloss.Color("#003300"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#dddddd"),
		Muted:    lipgloss.Color("#888888"),
		Disabled: lipgloss.Color("#444444"),
		Error:    lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeOcean, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// ThemeNames returns the names of the available themes.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Label    lipgloss.Style
	Value    lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Cursor   lipgloss.Style
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Focused:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Disabled: lipgloss.NewStyle().Foreground(t.Disabled),
		Selected: lipgloss.NewStyle().Foreground(t.Text).Background(t.Muted),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Cursor: lipgloss.NewStyle().Foreground(t.Accent).Reverse(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Error:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}
