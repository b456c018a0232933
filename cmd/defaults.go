package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var defaultsDryRun bool

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Restore the default splash screen theme",
	Long:  `Resets the selection to the configured default theme and saves it.`,
	Args:  cobra.NoArgs,
	RunE:  runDefaults,
}

func init() {
	defaultsCmd.Flags().BoolVarP(&defaultsDryRun, "dry-run", "n", false, "Show what would be saved without writing")
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaults(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}
	return restoreDefaults(cmd.OutOrStdout(), env, defaultsDryRun)
}

func restoreDefaults(out io.Writer, env *environment, dryRun bool) error {
	env.sel.RestoreDefaults()

	if !env.sel.NeedsSave() {
		fmt.Fprintln(out, "The default theme is already saved.")
		return nil
	}
	if dryRun {
		fmt.Fprintf(out, "Would save theme %s (engine %s) to %s\n", env.sel.Theme(), env.sel.DeriveEngine(env.sel.Theme()), env.store.Path())
		return nil
	}
	if err := env.sel.Save(); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.StatusOKStyle.Render("Restored default theme "+env.sel.Theme()+"."))
	return nil
}
