package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zhubert/splashctl/internal/catalog"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/ui"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed splash screen themes",
	Long: `Lists the installed splash screen themes in display order. The first entry
is always "None", which disables the splash screen. The theme currently
selected is marked.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment(selector.Callbacks{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := env.sel.Model().Entries()
	if listJSON {
		return writeCatalogJSON(out, entries, env.sel.Theme())
	}
	fmt.Fprintln(out, ui.RenderCatalog(entries, env.sel.Theme(), terminalWidth()))
	return nil
}

// listEntry is a catalog entry as printed by list --json.
type listEntry struct {
	catalog.ThemeEntry
	Current bool `json:"current"`
}

func writeCatalogJSON(w io.Writer, c catalog.Catalog, currentID string) error {
	entries := make([]listEntry, len(c))
	for i, e := range c {
		entries[i] = listEntry{ThemeEntry: e, Current: e.PluginID == currentID}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
