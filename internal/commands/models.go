package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kss0704/codellm/internal/config"
	"github.com/kss0704/codellm/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available Groq models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.LoadConfig()

		nameStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
		idStyle := lipgloss.NewStyle().Foreground(colorTextDim)
		markStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)

		tierStyles := map[models.Tier]lipgloss.Style{
			models.TierRecommended: lipgloss.NewStyle().Foreground(colorSuccess),
			models.TierAlternative: lipgloss.NewStyle().Foreground(colorWarning),
			models.TierLegacy:      lipgloss.NewStyle().Foreground(colorTextDim),
		}

		for _, m := range models.AvailableModels() {
			mark := "  "
			if m.ID == cfg.DefaultModel {
				mark = markStyle.Render("▸ ")
			}
			tier := tierStyles[m.Tier].Render(fmt.Sprintf("%-13s", "["+m.Tier.String()+"]"))
			fmt.Printf("%s%s %s %s\n", mark, tier, nameStyle.Render(fmt.Sprintf("%-28s", m.Label)), idStyle.Render(m.ID))
		}

		fmt.Println()
		fmt.Println(dimStyle.Render("Set a default with 'codellm config set default_model <id>' or use -m per run."))
		return nil
	},
}
