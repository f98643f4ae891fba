package session

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/mortydex/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true)
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

func (s *Session) render(style lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}
	return style.Render(text)
}

// printResults prints a 0-indexed list of character names.
func (s *Session) printResults(characters []models.Character) {
	fmt.Fprintf(s.out, "\n%s\n", s.render(headingStyle, "Results:"))
	for i, c := range characters {
		fmt.Fprintf(s.out, "%s %s\n", s.render(indexStyle, fmt.Sprintf("%d)", i)), c.Name)
	}
}

func (s *Session) printDetails(c models.Character) {
	fmt.Fprintf(s.out, "\n%s\n", s.render(headingStyle, "--- Character details ---"))
	fmt.Fprintf(s.out, "Name   : %s\n", c.Name)
	fmt.Fprintf(s.out, "Origin : %s\n", c.Origin)
	fmt.Fprintf(s.out, "Species: %s\n", c.Species)
	fmt.Fprintf(s.out, "Status : %s\n", c.Status)

	if !c.HasEpisodes() {
		fmt.Fprintln(s.out, s.render(hintStyle, "No episodes found for this character."))
		return
	}

	fmt.Fprintln(s.out, "Episodes:")
	for _, title := range c.Episodes {
		fmt.Fprintln(s.out, title)
	}
	fmt.Fprintln(s.out)
}
