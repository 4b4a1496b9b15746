// Package render turns game output into terminal text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aaronzipp/twenty-questions/internal/models"
	"github.com/aaronzipp/twenty-questions/internal/reply"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#6C7A89")
	colorYes    = lipgloss.Color("#2CD7C7")
	colorNo     = lipgloss.Color("#E74C3C")

	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	guessStyle    = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	textStyle     = lipgloss.NewStyle()
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	choiceStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// Glyphs of the feature table
const (
	GlyphYes     = "o"
	GlyphNo      = "x"
	GlyphNeutral = "."
)

// Intents writes one block per reply intent
func Intents(w io.Writer, intents []reply.Intent) error {
	var b strings.Builder
	for _, in := range intents {
		switch in.Kind {
		case reply.KindAskQuestion:
			b.WriteString(questionStyle.Render(in.Text))
		case reply.KindMakeGuess:
			b.WriteString(guessStyle.Render(in.Text))
		case reply.KindReprompt:
			b.WriteString(mutedStyle.Render(in.Text))
			if in.Prompt != "" {
				b.WriteString("\n")
				b.WriteString(questionStyle.Render(in.Prompt))
			}
		default:
			b.WriteString(textStyle.Render(in.Text))
		}
		b.WriteString("\n")
		if len(in.Choices) > 0 {
			b.WriteString(choiceStyle.Render(Choices(in.Choices)))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Choices formats quick-reply labels as "[yes / no]"
func Choices(labels []string) string {
	return "[" + strings.Join(labels, " / ") + "]"
}

// Glyph maps a feature value to its table symbol
func Glyph(v float64) string {
	switch {
	case v > 0:
		return GlyphYes
	case v < 0:
		return GlyphNo
	default:
		return GlyphNeutral
	}
}

// FeatureTable writes a solutions x questions matrix followed by the question key
func FeatureTable(w io.Writer, solutions []models.Solution, questions []models.Question, features models.FeatureTable) error {
	headers := make([]string, 0, len(questions)+1)
	headers = append(headers, "")
	for _, q := range questions {
		headers = append(headers, strconv.FormatInt(int64(q.ID), 10))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, s := range solutions {
		cells := make([]string, 0, len(questions)+1)
		cells = append(cells, s.Name)
		for _, q := range questions {
			cells = append(cells, glyphCell(features.Value(q.ID, s.ID)))
		}
		t.Row(cells...)
	}

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	for _, q := range questions {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d: %s", q.ID, q.Text)))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func glyphCell(v float64) string {
	g := Glyph(v)
	switch g {
	case GlyphYes:
		return lipgloss.NewStyle().Foreground(colorYes).Render(g)
	case GlyphNo:
		return lipgloss.NewStyle().Foreground(colorNo).Render(g)
	default:
		return g
	}
}
