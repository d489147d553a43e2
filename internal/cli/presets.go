package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/geometry"
)

// presetsCommand creates the presets command.
func (c *CLI) presetsCommand() *cobra.Command {
	var presetsFile string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List label stock presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(presetsFile)
			if err != nil {
				return err
			}
			fmt.Println(presetTable(reg.Presets()))
			printDetail("* default preset; add stocks with --presets-file")
			printNewline()
			printNextStep("Generate a sheet", appName+" generate --preset <name> --count 300")
			return nil
		},
	}

	cmd.Flags().StringVar(&presetsFile, "presets-file", "", "TOML file with additional presets")
	return cmd
}

// presetTable renders presets as a bordered table.
func presetTable(presets []geometry.Preset) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		g := p.Geometry
		name := p.Name
		if name == geometry.DefaultPreset {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d×%d", g.Columns, g.Rows),
			fmt.Sprintf("%.3f×%.3f in", g.LabelWidth/geometry.Inch, g.LabelHeight/geometry.Inch),
			paperName(g),
			fmt.Sprintf("%d", g.Capacity()),
			p.Canvas,
			p.Description,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Grid", "Label", "Page", "Per page", "Canvas", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 6:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func paperName(g geometry.Geometry) string {
	if p, ok := geometry.PaperFor(g.PageWidth, g.PageHeight); ok {
		return p.Name
	}
	return fmt.Sprintf("%.0f×%.0f pt", g.PageWidth, g.PageHeight)
}
