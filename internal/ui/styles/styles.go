// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions and styling so the browser,
// the static tables and the spinner look the same. Call Init after loading
// config to apply the configured theme.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = DefaultTheme.Primary

	// Accent is the highlight color for selected/active items (pink)
	Accent color.Color = DefaultTheme.Accent

	// Favorite is the color of the favorite star (yellow)
	Favorite color.Color = DefaultTheme.Favorite

	// Error is used for error messages (red)
	Error color.Color = DefaultTheme.Error

	// Muted is used for disabled/inactive text (gray)
	Muted color.Color = DefaultTheme.Muted

	// Normal is the standard text color (light gray)
	Normal color.Color = DefaultTheme.Normal
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// FavoriteStyle colors the favorite star
	FavoriteStyle = lipgloss.NewStyle().Foreground(Favorite)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// NormalStyle applies the normal text color
	NormalStyle = lipgloss.NewStyle().Foreground(Normal)

	// TitleStyle renders view headers
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// HighlightStyle for highlighting matched characters (pink, bold, underline)
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true)
)
