package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planline/planline/pkg/config"
	"github.com/planline/planline/pkg/history"
	"github.com/planline/planline/pkg/render/arc"
)

// runsOpts holds the command-line flags for the runs command.
type runsOpts struct {
	limit int  // maximum number of runs to list
	plain bool // print a plain table instead of the interactive browser
}

// newRunsCmd creates the runs command for browsing recorded generation runs.
// Without arguments it lists recent runs, interactively on a terminal. With
// a run ID it prints that run's report and arc diagram.
func newRunsCmd(configPath *string) *cobra.Command {
	var opts runsOpts

	cmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "Browse recorded generation runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runRuns(cmd.Context(), *configPath, id, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "maximum number of runs to list")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a plain table instead of the interactive browser")

	return cmd
}

// runRuns opens the configured history store and either shows a single run
// or lists recent ones.
func runRuns(ctx context.Context, configPath, id string, opts *runsOpts) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if id != "" {
		runID, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", id, err)
		}
		run, err := store.Get(ctx, runID)
		if err != nil {
			return err
		}
		printRun(run)
		return nil
	}

	runs, err := store.List(ctx, opts.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printInfo("No recorded runs")
		return nil
	}

	if opts.plain || !stdoutIsTerminal() {
		printRunTable(runs)
		return nil
	}

	model := NewRunListModel(runs)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(RunListModel); ok && m.Selected != nil {
		printNewline()
		printRun(m.Selected)
	}
	return nil
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// printRun prints a single run's report and arc diagram.
func printRun(run *history.Run) {
	fmt.Println(StyleTitle.Render("Run " + run.ID.String()))
	printDetail("created: %s", run.CreatedAt.Local().Format(time.RFC3339))
	printDetail("roots: %s", strings.Join(run.Roots, ", "))
	printDetail("dictionary: %s", run.DictHash)
	printNewline()

	printPlanar(run.Planar, run.Crossings)
	printStats(len(run.Sequence), len(run.Links), run.Crossings, false)
	if run.Unmet > 0 {
		printWarning("%d connector(s) left unmet", run.Unmet)
	}

	printNewline()
	fmt.Print(arc.Text(run.Layout()))
}

// printRunTable prints runs as a plain table, one line per run.
func printRunTable(runs []*history.Run) {
	fmt.Printf("%-36s  %-20s  %6s  %5s  %9s  %s\n",
		"ID", "CREATED", "POINTS", "LINKS", "CROSSINGS", "PLANAR")
	for _, r := range runs {
		fmt.Printf("%-36s  %-20s  %6d  %5d  %9d  %t\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			len(r.Sequence), len(r.Links), r.Crossings, r.Planar)
	}
}

// =============================================================================
// RunListModel - Interactive run browsing
// =============================================================================

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// RunListModel is the bubbletea model for interactive run browsing.
type RunListModel struct {
	Runs     []*history.Run
	Cursor   int
	Selected *history.Run
	Height   int
	Offset   int
}

// NewRunListModel creates a new run list model.
func NewRunListModel(runs []*history.Run) RunListModel {
	return RunListModel{
		Runs:   runs,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m RunListModel) Init() tea.Cmd {
	return nil
}

func (m RunListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Runs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Runs[m.Cursor]
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

func (m RunListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generation Runs"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Runs) {
		end = len(m.Runs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Runs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		planar := iconSuccess
		if !r.Planar {
			planar = iconError
		}

		seq := strings.Join(r.Sequence, " ")
		if len(seq) > 32 {
			seq = seq[:29] + "..."
		}

		rows = append(rows, []string{
			cursor,
			r.ID.String()[:8],
			formatRelativeTime(r.CreatedAt),
			fmt.Sprintf("%d", len(r.Sequence)),
			fmt.Sprintf("%d", len(r.Links)),
			planar,
			seq,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Run", "Created", "Points", "Links", "Planar", "Sequence").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Runs) {
				return lipgloss.NewStyle()
			}
			r := m.Runs[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if r.Planar {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorYellow).Bold(true)
			}
			if !r.Planar {
				return base.Foreground(colorYellow)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Runs))))

	return b.String()
}

// formatRelativeTime renders t relative to now for recent times, falling
// back to a date for anything older than a week.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
