package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/pick"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ModListModel - Interactive mod selection
// =============================================================================

// ModListModel is the bubbletea model for interactive mod selection.
// Typing filters the list by name or author.
type ModListModel struct {
	All      []vintagestory.ModSummary
	Visible  []vintagestory.ModSummary
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected *vintagestory.ModSummary
	Now      time.Time
}

// NewModListModel creates a new mod list model.
func NewModListModel(mods []vintagestory.ModSummary) ModListModel {
	return ModListModel{
		All:     mods,
		Visible: mods,
		Height:  15,
		Now:     time.Now(),
	}
}

func (m ModListModel) Init() tea.Cmd {
	return nil
}

func (m ModListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.moveCursor(-1)
		case tea.KeyDown:
			m.moveCursor(1)
		case tea.KeyPgUp:
			m.moveCursor(-m.Height)
		case tea.KeyPgDown:
			m.moveCursor(m.Height)
		case tea.KeyEnter:
			if len(m.Visible) == 0 {
				return m, nil
			}
			sel := m.Visible[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		case tea.KeyCtrlR:
			// Jump to a random visible mod.
			if i, err := pick.One(indices(len(m.Visible))); err == nil {
				m.moveCursor(i - m.Cursor)
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.setFilter(string(r[:len(r)-1]))
			}
		case tea.KeyRunes, tea.KeySpace:
			m.setFilter(m.Filter + string(msg.Runes))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *ModListModel) moveCursor(delta int) {
	if len(m.Visible) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Visible)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *ModListModel) setFilter(f string) {
	m.Filter = f
	m.Visible = modFilter{search: f}.apply(m.All)
	m.Cursor, m.Offset = 0, 0
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (m ModListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Mod"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ctrl+r random  ⏎ select  esc quit"))
	b.WriteString("\n")
	b.WriteString(StyleValue.Render("filter: " + m.Filter))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no mods match"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		mod := m.Visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			truncate(mod.Name, 36),
			truncate(mod.Author, 18),
			formatCount(mod.Downloads),
			formatRelativeTime(mod.LastReleased, m.Now),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Mod", "Author", "Downloads", "Released").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))

	return b.String()
}

// browseCommand creates the interactive "browse" command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a mod interactively and show its details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				spin := c.spinner(cmd, "Fetching mods...")
				mods, err := client.ListMods(ctx)
				spin.Stop()
				if err != nil {
					return err
				}

				p := tea.NewProgram(NewModListModel(mods), tea.WithContext(ctx), tea.WithOutput(cmd.ErrOrStderr()))
				final, err := p.Run()
				if err != nil {
					return fmt.Errorf("browse: %w", err)
				}
				sel := final.(ModListModel).Selected
				if sel == nil {
					return nil
				}

				mod, err := client.GetMod(ctx, sel.ModID)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, mod)
				}
				renderMod(w, mod, 5, time.Now())
				printDetail(w, "https://mods.vintagestory.at/show/mod/%s", strconv.Itoa(mod.AssetID))
				return nil
			})
		},
	}
}
