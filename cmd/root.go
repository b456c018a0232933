package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "splashctl",
	Short: "Choose, preview and save the boot splash screen theme",
	Long: `splashctl lists the splash screen themes installed as Plasma look-and-feel
packages, previews them with the splash renderer, and saves the selection.

Run without a subcommand to pick a theme interactively.`,
	RunE:          runPick,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/splashctl/config.yaml)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("splashctl %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("splashctl %s\n", version)
}
