package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/catalog"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/notification"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var watchSave bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan themes whenever packages are installed or removed",
	Long: `Watches the theme directories and rebuilds the catalog whenever a package is
installed, removed or edited. If the selected theme disappears, the default
theme takes its place; pass --save to write that change immediately.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "Save the selection when it falls back to the default")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	var env *environment
	env, err := loadEnvironment(selector.Callbacks{
		CatalogChanged: func() {
			if env != nil {
				fmt.Fprintf(out, "Catalog updated: %d themes\n", env.sel.Model().Len()-1)
			}
		},
		ThemeChanged: func(id string) {
			if env != nil {
				fmt.Fprintf(out, "Selection changed to %s\n", id)
			}
		},
	})
	if err != nil {
		return err
	}

	w, err := catalog.NewWatcher(env.source.Roots(), catalog.DefaultSettleDelay)
	if err != nil {
		return fmt.Errorf("error watching theme directories: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(out, ui.RenderCatalog(env.sel.Model().Entries(), env.sel.Theme(), terminalWidth()))
	fmt.Fprintf(out, "Watching %d directories. Press Ctrl+C to stop.\n", len(w.Watched()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = w.Run(ctx, func() { rescan(out, env, watchSave) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// rescan rebuilds the catalog and, when save is set, writes a selection that
// fell back to the default.
func rescan(out io.Writer, env *environment, save bool) {
	env.sel.Rebuild()
	if !save || !env.sel.NeedsSave() {
		return
	}
	if err := env.sel.Save(); err != nil {
		logger.Error("watch: saving fallback selection: %v", err)
		fmt.Fprintln(out, ui.StatusErrorStyle.Render(err.Error()))
		return
	}
	name := env.sel.Theme()
	if i, ok := env.sel.Model().IndexOf(name); ok {
		if e, ok := env.sel.Model().EntryAt(i); ok {
			name = e.DisplayName
		}
	}
	fmt.Fprintf(out, "Saved %s\n", name)
	if env.cfg.NotificationsEnabled() {
		_ = notification.Saved(name)
	}
}
