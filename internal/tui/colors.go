package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the jobtrack theme (dark palette)
const (
	ColorBorder = "#3A4A5C" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, job names, user input
	ColorSecondaryText = "#A9B4C2" // Customer names, hints
	ColorDisabledText  = "#6D7383" // Muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (steel blue theme)
	ColorAccentMain   = "#2F81F7" // Logo, active borders, progress fill
	ColorAccentBright = "#79B8FF" // Highlights, phase headers

	// State Colors
	ColorError   = "#EF4444" // Overdue, validation errors
	ColorSuccess = "#22C55E" // Completed milestones, 100%
	ColorWarning = "#F59E0B" // Due soon
)

// Palette is one set of theme colors
type Palette struct {
	Border        string
	PrimaryText   string
	SecondaryText string
	DisabledText  string
	HelpText      string
	AccentMain    string
	AccentBright  string
	Error         string
	Success       string
	Warning       string
}

var darkPalette = Palette{
	Border:        ColorBorder,
	PrimaryText:   ColorPrimaryText,
	SecondaryText: ColorSecondaryText,
	DisabledText:  ColorDisabledText,
	HelpText:      ColorHelpText,
	AccentMain:    ColorAccentMain,
	AccentBright:  ColorAccentBright,
	Error:         ColorError,
	Success:       ColorSuccess,
	Warning:       ColorWarning,
}

var lightPalette = Palette{
	Border:        "#C3CCD8",
	PrimaryText:   "#1F2328",
	SecondaryText: "#57606A",
	DisabledText:  "#8C959F",
	HelpText:      "245",
	AccentMain:    "#0969DA",
	AccentBright:  "#0550AE",
	Error:         "#CF222E",
	Success:       "#1A7F37",
	Warning:       "#9A6700",
}

// PaletteFor picks the palette for a saved preference; nil follows the
// terminal background
func PaletteFor(dark *bool) Palette {
	isDark := lipgloss.HasDarkBackground()
	if dark != nil {
		isDark = *dark
	}
	if isDark {
		return darkPalette
	}
	return lightPalette
}

// Styles are the lipgloss styles derived from a palette
type Styles struct {
	Palette   Palette
	Title     lipgloss.Style
	Header    lipgloss.Style
	Text      lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Panel     lipgloss.Style
	Selected  lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Palette:   p,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentMain)),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentBright)),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.PrimaryText)),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color(p.SecondaryText)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.DisabledText)),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.HelpText)).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.AccentBright)),
	}
}
