package render

import "github.com/charmbracelet/lipgloss"

// Theme groups the styles used by the contact views.
type Theme struct {
	Name     string
	Dark     bool
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Selected lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Pane     lipgloss.Style
	Focused  lipgloss.Style
	Skeleton lipgloss.Style
	Help     lipgloss.Style
}

const (
	indigo600 = "#4F46E5"
	indigo400 = "#818CF8"
	gray100   = "#F3F4F6"
	gray400   = "#9CA3AF"
	gray500   = "#6B7280"
	gray700   = "#374151"
	gray800   = "#1F2937"
	green100  = "#D1FAE5"
	green800  = "#065F46"
	red100    = "#FEE2E2"
	red400    = "#F87171"
	red600    = "#DC2626"
	white     = "#FFFFFF"
)

// ThemeFor returns the dark or the light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// LightTheme is the default theme.
func LightTheme() Theme {
	return newTheme("light", false, indigo600, gray800, gray500, red600, green800, green100)
}

// DarkTheme is used when dark mode is enabled.
func DarkTheme() Theme {
	return newTheme("dark", true, indigo400, gray100, gray400, red400, green100, green800)
}

func newTheme(name string, dark bool, accent, text, muted, errColor, okFg, okBg string) Theme {
	border := lipgloss.RoundedBorder()
	paneBorder := gray400
	if dark {
		paneBorder = gray700
	}
	return Theme{
		Name:    name,
		Dark:    dark,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(errColor)),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(okFg)).Background(lipgloss.Color(okBg)).Padding(0, 1),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(white)).
			Background(lipgloss.Color(accent)),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color(green800)).Background(lipgloss.Color(green100)).Padding(0, 1),
		Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color(red600)).Background(lipgloss.Color(red100)).Padding(0, 1),
		Button:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(white)).Background(lipgloss.Color(accent)).Padding(0, 2),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color(gray500)).Background(lipgloss.Color(gray700)).Padding(0, 2),
		Pane:     lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(paneBorder)).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		Skeleton: lipgloss.NewStyle().Foreground(lipgloss.Color(paneBorder)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
	}
}
