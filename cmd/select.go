package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/catalog"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var (
	selectPreview bool
	selectDryRun  bool
)

var selectCmd = &cobra.Command{
	Use:   "select [theme]",
	Short: "Select and save the splash screen theme",
	Long: `Selects a theme and saves it. The theme may be given as a plugin id, a display
name, or a fuzzy query. Without an argument an interactive picker is shown.

Selecting "None" disables the splash screen.

Examples:
  splashctl select org.kde.breeze.desktop
  splashctl select "breeze dark" --preview
  splashctl select None`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectPreview, "preview", false, "Preview the theme and confirm before saving")
	selectCmd.Flags().BoolVarP(&selectDryRun, "dry-run", "n", false, "Show what would be saved without writing")
	rootCmd.AddCommand(selectCmd)
}

// runPick is the root command: the interactive picker.
func runPick(cmd *cobra.Command, _ []string) error {
	return runSelect(cmd, nil)
}

func runSelect(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var entry catalog.ThemeEntry
	if len(args) == 1 {
		entry, err = env.resolve(args[0])
	} else {
		entry, err = pickEntry(env)
	}
	if err != nil {
		return err
	}

	if selectPreview {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		err := runPreview(ctx, out, env, entry, nil)
		stop()
		if err != nil {
			return err
		}
		if entry.PluginID != catalog.NoneID && !confirm(cmd.InOrStdin(), "Save "+entry.DisplayName+"?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	return applySelection(out, env, entry, selectDryRun)
}

func pickEntry(env *environment) (catalog.ThemeEntry, error) {
	id, err := ui.PickTheme(env.sel.Model().Entries(), env.sel.Theme())
	if err != nil {
		return catalog.ThemeEntry{}, err
	}
	return env.resolve(id)
}

// applySelection chooses entry and saves it unless dryRun is set.
func applySelection(out io.Writer, env *environment, entry catalog.ThemeEntry, dryRun bool) error {
	if err := env.sel.ChooseTheme(entry.PluginID); err != nil {
		return err
	}
	engine := env.sel.DeriveEngine(entry.PluginID)

	if dryRun {
		fmt.Fprintf(out, "Would save theme %s (engine %s) to %s\n", entry.PluginID, engine, env.store.Path())
		return nil
	}
	if err := env.sel.Save(); err != nil {
		return err
	}
	logger.WithTheme(entry.PluginID).Info("selection saved", "engine", engine)
	fmt.Fprintln(out, ui.StatusOKStyle.Render(fmt.Sprintf("Selected %s (engine %s).", entry.DisplayName, engine)))
	return nil
}
