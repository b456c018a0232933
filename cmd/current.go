package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the saved splash screen selection",
	Long: `Prints the saved theme and engine. When the saved theme is no longer
installed, the theme that would replace it is shown and the selection is
reported as needing a save.`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)
}

func runCurrent(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}
	printCurrent(cmd.OutOrStdout(), env)
	return nil
}

func printCurrent(w io.Writer, env *environment) {
	name := env.sel.Theme()
	if entry, ok := env.current(); ok {
		name = entry.DisplayName
	}

	fmt.Fprintf(w, "%s %s (%s)\n", ui.LabelStyle.Render("Theme: "), name, env.sel.Theme())
	fmt.Fprintf(w, "%s %s\n", ui.LabelStyle.Render("Engine:"), env.sel.Engine())
	fmt.Fprintf(w, "%s %s\n", ui.LabelStyle.Render("File:  "), env.store.Path())
	if env.sel.NeedsSave() {
		fmt.Fprintln(w, ui.StatusWarnStyle.Render("The saved theme is not installed; run 'splashctl defaults' or select another theme."))
	}
}
