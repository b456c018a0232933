package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/catalog"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/notification"
	"github.com/zhubert/splashctl/internal/preview"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var previewCmd = &cobra.Command{
	Use:   "preview <theme>",
	Short: "Preview a splash screen theme",
	Long: `Runs the splash renderer in test mode for a theme and waits for it to finish.
Press Ctrl+C to stop the preview early. The "None" theme has nothing to
preview.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreviewCmd,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}
	entry, err := env.resolve(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runPreview(ctx, cmd.OutOrStdout(), env, entry, nil)
}

// runPreview previews entry and blocks until the renderer exits or ctx is
// done, in which case the renderer is killed. launcher may be nil.
func runPreview(ctx context.Context, out io.Writer, env *environment, entry catalog.ThemeEntry, launcher preview.Launcher) error {
	if entry.PluginID == catalog.NoneID {
		fmt.Fprintln(out, "The None theme shows no splash screen; nothing to preview.")
		return nil
	}

	var failure error
	sup := preview.New(env.cfg.Renderer, launcher, preview.Callbacks{
		StateChanged: func(running bool) {
			if running {
				fmt.Fprintf(out, "Previewing %s...\n", entry.DisplayName)
			}
		},
		Failed: func(err error) {
			failure = err
			logger.Warn("preview of %s failed: %v", entry.PluginID, err)
			if env.cfg.NotificationsEnabled() {
				notification.PreviewFailed(entry.DisplayName, err)
			}
		},
	})

	sup.Start(entry.PluginID)
	if err := sup.Wait(ctx); err != nil {
		if stopErr := sup.Stop(); stopErr != nil {
			return stopErr
		}
		// The renderer has been told to die; let the monitor settle.
		_ = sup.Wait(context.Background())
		fmt.Fprintln(out, ui.StatusWarnStyle.Render("Preview stopped."))
		return nil
	}

	if failure != nil {
		return failure
	}
	fmt.Fprintln(out, ui.StatusOKStyle.Render("Preview finished."))
	return nil
}
