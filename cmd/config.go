package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/splashctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage splashctl configuration",
	Long:  `Commands for creating and inspecting the splashctl config file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a config file template",
	Long: `Creates a config file with every option commented out, showing its default.
The file is written to --config, or $XDG_CONFIG_HOME/splashctl/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration after merging the config file over the defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return writeConfigYAML(cmd.OutOrStdout(), cfg)
}

// writeConfigYAML prints cfg with the search roots that will actually be
// scanned filled in.
func writeConfigYAML(w io.Writer, cfg *config.Config) error {
	effective := *cfg
	effective.SearchRoots = cfg.DataRoots()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&effective); err != nil {
		return err
	}
	return enc.Close()
}
