package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/dropdown"
	"github.com/jask/eliterealty/internal/leads"
)

// Catppuccin Mocha, the subset the page uses.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// The brokerage accent is amber, so peach stands in for the brand.
const (
	colorBrand   = colorPeach
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorOverlay1
)

// chartColors is the fill order for demand bars and the type distribution.
var chartColors = []lipgloss.Color{colorPeach, colorYellow, colorTeal, colorBlue, colorMauve, colorSky}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorMantle).Background(colorBrand).Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Background(colorSurface0)
	statusStyle   = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	favoriteStyle = lipgloss.NewStyle().Foreground(colorRed)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBrand).Padding(1, 2)
	toastStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(0, 1).Foreground(colorText)
)

func dropdownStyles() dropdown.Styles {
	return dropdown.Styles{
		Border:      colorSurface1,
		Focus:       colorFocus,
		Active:      colorBrand,
		Text:        colorText,
		Placeholder: colorOverlay0,
		Cursor:      colorSurface0,
		Check:       colorSuccess,
	}
}

func formStyles() leads.FormStyles {
	return leads.FormStyles{
		Title:   titleStyle.Underline(true),
		Label:   mutedStyle,
		Focused: cursorStyle,
		Context: lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0),
		Error:   errorStyle,
		Hint:    mutedStyle,
	}
}
