package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kss0704/codellm/internal/config"
	"github.com/kss0704/codellm/internal/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change persistent settings stored in ~/.codellm/config.json.

Keys:
  default_model      Model ID used when -m is not given
  temperature        Sampling temperature (0.0-1.0)
  max_tokens         Maximum response tokens (500-32768)
  copy_to_clipboard  Copy single-query responses to the clipboard (true/false)
  markdown_style     Glamour style for rendered output (dark, light, or a theme path)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Println("Configuration reset to defaults.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}

func showConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(colorText)

	rows := []struct {
		key string
		val string
	}{
		{"default_model", cfg.DefaultModel},
		{"temperature", strconv.FormatFloat(cfg.Temperature, 'g', -1, 64)},
		{"max_tokens", strconv.Itoa(cfg.MaxTokens)},
		{"copy_to_clipboard", strconv.FormatBool(cfg.CopyToClipboard)},
		{"markdown_style", cfg.Markdown.Style},
	}

	for _, r := range rows {
		fmt.Printf("%s %s\n", keyStyle.Render(fmt.Sprintf("%-18s", r.key)), valStyle.Render(r.val))
	}
	return nil
}

func setConfig(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "default_model":
		if !models.IsKnownModel(value) {
			return fmt.Errorf("unknown model %q: run 'codellm models' for the list", value)
		}
		cfg.DefaultModel = value

	case "temperature":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = models.ClampTemperature(v)

	case "max_tokens":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_tokens must be an integer: %w", err)
		}
		cfg.MaxTokens = models.ClampMaxTokens(v)

	case "copy_to_clipboard":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copy_to_clipboard must be true or false: %w", err)
		}
		cfg.CopyToClipboard = v

	case "markdown_style":
		cfg.Markdown.Style = value

	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}
