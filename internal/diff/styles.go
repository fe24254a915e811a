/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Styles contains all the styles for rendering diff output
type Styles struct {
	// Change type styles
	Added    lipgloss.Style
	Removed  lipgloss.Style
	Modified lipgloss.Style
	Hunk     lipgloss.Style

	// Status styles
	StatusChanges  lipgloss.Style
	StatusNoChange lipgloss.Style

	// Header and section styles
	HeaderTitle   lipgloss.Style
	SectionHeader lipgloss.Style
	Separator     lipgloss.Style

	// Content styles
	Key    lipgloss.Style
	Subtle lipgloss.Style
	Error  lipgloss.Style

	// Whether colours are enabled
	UseColour bool
}

// NewStyles creates the output styles. Colours are optimised based on the
// terminal background (dark vs light).
func NewStyles(useColour bool) *Styles {
	s := &Styles{UseColour: useColour}

	if !useColour {
		// An empty style renders text unchanged
		plainStyle := lipgloss.NewStyle()

		s.Added = plainStyle
		s.Removed = plainStyle
		s.Modified = plainStyle
		s.Hunk = plainStyle
		s.StatusChanges = plainStyle
		s.StatusNoChange = plainStyle
		s.HeaderTitle = plainStyle
		s.SectionHeader = plainStyle
		s.Separator = plainStyle
		s.Key = plainStyle
		s.Subtle = plainStyle
		s.Error = plainStyle
		return s
	}

	hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	var (
		headerText    string
		warningText   string
		keyText       string
		subtleText    string
		separatorText string
		activeText    string
		errorText     string
	)

	if hasDark {
		headerText = "12"     // Bright Blue
		warningText = "11"    // Yellow
		keyText = "14"        // Cyan
		subtleText = "8"      // Dark Grey
		separatorText = "243" // Medium Grey
		activeText = "13"     // Magenta
		errorText = "9"       // Red
	} else {
		headerText = "4"      // Blue
		warningText = "3"     // Yellow/Brown
		keyText = "6"         // Cyan
		subtleText = "8"      // Grey
		separatorText = "242" // Medium Grey
		activeText = "5"      // Magenta
		errorText = "1"       // Red
	}

	// Traditional red/green diff colours regardless of background
	s.Added = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	s.Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	s.Modified = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.Hunk = lipgloss.NewStyle().Foreground(lipgloss.Color(keyText))

	s.StatusChanges = lipgloss.NewStyle().
		Foreground(lipgloss.Color(warningText)).
		Bold(true)

	s.StatusNoChange = lipgloss.NewStyle().
		Foreground(lipgloss.Color(subtleText)).
		Bold(true)

	s.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(headerText))

	s.SectionHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(activeText))

	s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color(separatorText))
	s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color(keyText))
	s.Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color(subtleText))
	s.Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorText)).
		Bold(true)

	return s
}

// GetChangeSymbol returns the appropriate symbol for a change type
func (s *Styles) GetChangeSymbol(changeType ChangeType) string {
	switch changeType {
	case ChangeTypeAdd:
		return s.Added.Render("+")
	case ChangeTypeModify:
		return s.Modified.Render("~")
	case ChangeTypeRemove:
		return s.Removed.Render("-")
	default:
		return "?"
	}
}

// ShouldUseColour determines if colour output should be used
func ShouldUseColour() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
