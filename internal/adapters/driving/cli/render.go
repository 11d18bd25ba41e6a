package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// Palette colours.
var (
	colourPrimary = lipgloss.Color("#7C3AED") // Purple
	colourAccent  = lipgloss.Color("#06B6D4") // Cyan
	colourMuted   = lipgloss.Color("#6C7086") // Medium gray
	colourSuccess = lipgloss.Color("#A6E3A1") // Green
	colourBorder  = lipgloss.Color("#45475A") // Border gray
)

// styles holds the lipgloss styles of the console output. They are bound
// to the writer's renderer so colour is only emitted on a terminal.
type styles struct {
	renderer *lipgloss.Renderer

	Heading lipgloss.Style
	Repo    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		renderer: r,
		Heading:  r.NewStyle().Bold(true).Foreground(colourPrimary),
		Repo:     r.NewStyle().Bold(true).Foreground(colourAccent),
		Muted:    r.NewStyle().Foreground(colourMuted),
		Success:  r.NewStyle().Foreground(colourSuccess),
		Header:   r.NewStyle().Bold(true).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Border:   r.NewStyle().Foreground(colourBorder),
	}
}

// heading renders a section title underlined by a rule of equal width.
func (s *styles) heading(title string) string {
	return s.Heading.Render(title) + "\n" + s.Muted.Render(strings.Repeat("=", len(title)))
}

// summaryTable renders per-repository counts followed by the TOTAL and
// UNIQUE rows.
func (s *styles) summaryTable(summary *domain.BatchSummary) string {
	rows := make([][]string, 0, len(summary.Reports)+2)
	for i := range summary.Reports {
		r := &summary.Reports[i]
		rows = append(rows, countsRow(r.Repo.String(), domain.EmailCounts{
			Users:  r.UsersCount,
			Emails: r.EmailsCount,
			Rate:   r.EmailRate,
		}))
	}
	rows = append(rows,
		countsRow("* TOTAL", summary.Totals),
		countsRow("* UNIQUE", summary.Unique),
	)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers("repo", "emails", "users", "rate").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
	return t.Render()
}

func countsRow(label string, c domain.EmailCounts) []string {
	return []string{
		label,
		fmt.Sprint(c.Emails),
		fmt.Sprint(c.Users),
		fmt.Sprintf("%d%%", c.Rate),
	}
}
