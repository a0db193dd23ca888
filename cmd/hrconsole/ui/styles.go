// Package ui provides terminal rendering for hrconsole: the colour theme,
// static attendance tables and the interactive attendance browser.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hrconsole/internal/attendance"
)

var (
	// Light Mode Colors
	LightForeground = lipgloss.Color("#0f172a")
	LightPrimary    = lipgloss.Color("#1d4ed8")
	LightMuted      = lipgloss.Color("#64748b")
	LightBorder     = lipgloss.Color("#cbd5e1")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#e2e8f0")
	DarkPrimary    = lipgloss.Color("#60a5fa")
	DarkMuted      = lipgloss.Color("#94a3b8")
	DarkBorder     = lipgloss.Color("#334155")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626")
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#d97706")
	Info        = lipgloss.Color("#2563eb")
	Neutral     = lipgloss.Color("#6b7280")
)

// statusColors maps each attendance status to its badge colour.
var statusColors = map[attendance.Status]lipgloss.Color{
	attendance.StatusPresent:  Success,
	attendance.StatusOvertime: Info,
	attendance.StatusPartial:  Warning,
	attendance.StatusAbsent:   Destructive,
	attendance.StatusUnknown:  Neutral,
}

// StatusColor returns the colour for a status. Unrecognised statuses are neutral.
func StatusColor(s attendance.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return Neutral
}

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeByName returns the named theme. Anything other than "light" is dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// DetectTheme resolves the configured theme. An explicit "dark" or "light"
// is returned as is; anything else ("auto") reads the terminal background
// from COLORFGBG and falls back to dark.
func DetectTheme(configured string) Theme {
	switch strings.ToLower(configured) {
	case "dark", "light":
		return ThemeByName(configured)
	}
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}
	return DarkTheme()
}

// GlamourStyle names the glamour standard style matching the theme.
func (t Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Content lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style

	Badge lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// StatusBadge renders a status as a coloured badge.
func (s Styles) StatusBadge(status attendance.Status) string {
	return s.Badge.Background(StatusColor(status)).Render(string(status))
}

// StatusText renders a status in its colour without a background.
func (s Styles) StatusText(status attendance.Status) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render(string(status))
}
