package styles

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/courses/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary  color.Color // titles, checkbox
	Accent   color.Color // cursor row
	Favorite color.Color // favorite star
	Error    color.Color // error messages
	Muted    color.Color // instructor names, help
	Normal   color.Color // standard text
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme
	Dark  *Theme
}

var (
	// DefaultTheme is the default color scheme (dark only)
	DefaultTheme = Theme{
		Primary:  lipgloss.Color("62"),  // cyan/teal
		Accent:   lipgloss.Color("212"), // pink/magenta
		Favorite: lipgloss.Color("220"), // yellow
		Error:    lipgloss.Color("196"), // red
		Muted:    lipgloss.Color("240"), // dark gray
		Normal:   lipgloss.Color("252"), // light gray
	}

	// DraculaTheme is based on the Dracula color scheme (dark only)
	DraculaTheme = Theme{
		Primary:  lipgloss.Color("#bd93f9"), // purple
		Accent:   lipgloss.Color("#ff79c6"), // pink
		Favorite: lipgloss.Color("#f1fa8c"), // yellow
		Error:    lipgloss.Color("#ff5555"), // red
		Muted:    lipgloss.Color("#6272a4"), // comment
		Normal:   lipgloss.Color("#f8f8f2"), // foreground
	}

	// NordTheme is based on the Nord color scheme (dark)
	NordTheme = Theme{
		Primary:  lipgloss.Color("#88c0d0"), // nord8
		Accent:   lipgloss.Color("#b48ead"), // nord15
		Favorite: lipgloss.Color("#ebcb8b"), // nord13
		Error:    lipgloss.Color("#bf616a"), // nord11
		Muted:    lipgloss.Color("#4c566a"), // nord3
		Normal:   lipgloss.Color("#eceff4"), // nord6
	}

	// NordLightTheme is based on the Nord color scheme (light)
	NordLightTheme = Theme{
		Primary:  lipgloss.Color("#5e81ac"), // nord10
		Accent:   lipgloss.Color("#b48ead"), // nord15
		Favorite: lipgloss.Color("#d08770"), // nord12
		Error:    lipgloss.Color("#bf616a"), // nord11
		Muted:    lipgloss.Color("#9a9a9a"),
		Normal:   lipgloss.Color("#2e3440"), // nord0
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	NoneTheme = Theme{
		Primary:  lipgloss.NoColor{},
		Accent:   lipgloss.NoColor{},
		Favorite: lipgloss.NoColor{},
		Error:    lipgloss.NoColor{},
		Muted:    lipgloss.NoColor{},
		Normal:   lipgloss.NoColor{},
	}
)

var themeFamilies = map[string]themeFamily{
	"none":    {Light: &NoneTheme, Dark: &NoneTheme},
	"default": {Dark: &DefaultTheme},
	"dracula": {Dark: &DraculaTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
}

var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init applies the configured theme and symbol set.
// Call this after loading config and before displaying any UI.
func Init(cfg config.ThemeConfig) {
	currentTheme = selectTheme(cfg)
	applyTheme(currentTheme)
	SetASCII(cfg.ASCII)
}

// selectTheme picks the variant for the configured mode, detecting the
// terminal background for "auto".
func selectTheme(cfg config.ThemeConfig) Theme {
	family, ok := themeFamilies[cfg.Name]
	if !ok {
		if cfg.Name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				cfg.Name, strings.Join(config.ValidThemeNames, ", "))
		}
		family = themeFamilies["default"]
	}

	var theme *Theme
	switch cfg.Mode {
	case "light":
		theme = family.Light
	case "dark":
		theme = family.Dark
	default:
		if lipgloss.HasDarkBackground(os.Stdin, os.Stderr) {
			theme = family.Dark
		} else {
			theme = family.Light
		}
	}

	if theme == nil {
		if family.Dark != nil {
			return *family.Dark
		}
		return *family.Light
	}
	return *theme
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Favorite = t.Favorite
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	FavoriteStyle = lipgloss.NewStyle().Foreground(t.Favorite)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	TitleStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)
}
