package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show details of a splash screen theme",
	Long: `Shows the name, plugin id, description and screenshot of a theme. The theme
may be given as a plugin id, a display name, or a fuzzy query that matches
one theme better than any other.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}

	entry, err := env.resolve(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderEntry(entry, entry.PluginID == env.sel.Theme()))
	return nil
}
