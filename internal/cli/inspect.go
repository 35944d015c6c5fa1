package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/frontier"
	"github.com/matzehuels/evoscape/pkg/lineage"
	"github.com/matzehuels/evoscape/pkg/run"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing run records.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [run.json]",
		Short: "Browse run records interactively",
		Long: `Browse run records interactively.

The inspect command opens a scrollable table of all records in the run
with their generation, origin, and fitness. Records on the Pareto
frontier are highlighted. Selecting a record prints its ancestor chain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

// runInspect loads the run and drives the record browser.
func (c *CLI) runInspect(input string) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}
	if len(data.Records) == 0 {
		printInfo("Run has no records")
		return nil
	}

	forest, err := data.Forest()
	if err != nil {
		return fmt.Errorf("build lineage: %w", err)
	}
	optimal := frontier.Optimal(data.FrontierPoints())

	model := NewRecordListModel(forest.Records(), optimal)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	m, ok := final.(RecordListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	return c.runPath(input, m.Selected.ID)
}

// =============================================================================
// RecordListModel - Interactive record browser
// =============================================================================

// RecordListModel is the bubbletea model for browsing run records.
type RecordListModel struct {
	Records  []lineage.Record
	Optimal  map[string]bool
	Cursor   int
	Selected *lineage.Record
	Height   int
	Offset   int
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(records []lineage.Record, optimal map[string]bool) RecordListModel {
	return RecordListModel{
		Records: records,
		Optimal: optimal,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			rec := m.Records[m.Cursor]
			m.Selected = &rec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Run"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show lineage  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Records) {
		end = len(m.Records)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		front := ""
		if m.Optimal[r.ID] {
			front = iconSuccess
		}

		origin := string(r.Origin)
		if origin == "" {
			origin = "—"
		}

		delta := fmt.Sprintf("%+.3f", r.Delta)
		if r.IsRoot() {
			delta = "—"
		}

		rows = append(rows, []string{
			cursor,
			r.ID,
			fmt.Sprintf("%d", r.Generation),
			origin,
			fmt.Sprintf("%.3f", r.Fitness),
			delta,
			front,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Gen", "Origin", "Fitness", "Delta", "Front").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Records) {
				return lipgloss.NewStyle()
			}
			r := m.Records[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			switch {
			case isCurrent && m.Optimal[r.ID]:
				return base.Foreground(colorGreen).Bold(true)
			case isCurrent:
				return base.Foreground(colorCyan).Bold(true)
			case m.Optimal[r.ID]:
				return base.Foreground(colorGreen)
			default:
				return base.Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}
