package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/Snowfall/internal/config"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with defaults",
	RunE:  resetSettings,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func resetSettings(cmd *cobra.Command, args []string) error {
	settingsPath, err := config.GetSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}
	if err := config.Save(settingsPath, config.Default()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Reset settings:", settingsPath)
	return nil
}
