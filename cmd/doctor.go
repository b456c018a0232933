package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/config"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/process"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that themes can be found and previewed",
	Long: `Checks the renderer used for previews, the theme directories that are
scanned, the saved selection and the config file, and reports anything that
would stop splashctl from working.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

// doctorCheck is one line of doctor output.
type doctorCheck struct {
	Name   string
	Detail string
	Status checkStatus
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	checks := collectChecks(env, path)
	if failed := printChecks(cmd.OutOrStdout(), checks); failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func collectChecks(env *environment, cfgFile string) []doctorCheck {
	var checks []doctorCheck

	if _, err := os.Stat(cfgFile); err == nil {
		checks = append(checks, doctorCheck{"Config", cfgFile, checkOK})
	} else {
		checks = append(checks, doctorCheck{"Config", "no file, using defaults", checkOK})
	}

	if path, err := process.CheckRenderer(env.cfg.Renderer); err == nil {
		checks = append(checks, doctorCheck{"Renderer", path, checkOK})
	} else {
		checks = append(checks, doctorCheck{"Renderer", err.Error() + " (previews will fail)", checkFail})
	}

	readable := 0
	for _, root := range env.source.Roots() {
		info, err := os.Stat(root)
		switch {
		case err == nil && info.IsDir():
			readable++
			checks = append(checks, doctorCheck{"Theme dir", root, checkOK})
		case os.IsNotExist(err):
			// Most XDG data dirs carry no look-and-feel packages.
		default:
			checks = append(checks, doctorCheck{"Theme dir", root + " is not readable", checkWarn})
		}
	}
	if readable == 0 {
		checks = append(checks, doctorCheck{"Theme dir", "no theme directories found", checkFail})
	}

	themes := env.sel.Model().Len() - 1
	if themes > 0 {
		checks = append(checks, doctorCheck{"Themes", fmt.Sprintf("%d installed", themes), checkOK})
	} else {
		checks = append(checks, doctorCheck{"Themes", "no splash themes installed; only None is available", checkWarn})
	}

	if env.sel.NeedsSave() {
		checks = append(checks, doctorCheck{"Selection", "saved theme is not installed; default " + env.sel.Theme() + " will be used", checkWarn})
	} else {
		checks = append(checks, doctorCheck{"Selection", env.sel.Theme(), checkOK})
	}

	if def := env.store.Defaults().Theme; !env.sel.Model().Contains(def) {
		checks = append(checks, doctorCheck{"Default", def + " is not installed", checkWarn})
	}

	if p := logger.Path(); p != "" {
		checks = append(checks, doctorCheck{"Log", p, checkOK})
	}

	return checks
}

// printChecks writes checks and returns the number that failed.
func printChecks(w io.Writer, checks []doctorCheck) int {
	failed := 0
	for _, c := range checks {
		var mark string
		switch c.Status {
		case checkOK:
			mark = ui.StatusOKStyle.Render("✓")
		case checkWarn:
			mark = ui.StatusWarnStyle.Render("!")
		default:
			mark = ui.StatusErrorStyle.Render("✗")
			failed++
		}
		fmt.Fprintf(w, "%s %s %s\n", mark, ui.LabelStyle.Render(ui.Fit(c.Name, 10)), c.Detail)
	}
	return failed
}
