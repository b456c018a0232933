package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/process"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Kill stray preview renderers and remove log files",
	Long: `Kills splash renderers left running in test mode (for example after a crash
during a preview) and removes splashctl's debug and preview logs.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runCleanWithReader(os.Stdin, cfg.Renderer)
}

// previewLogs returns the preview log files present on disk.
func previewLogs() []string {
	matches, _ := filepath.Glob(logger.PreviewLogPath("*"))
	return matches
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, renderer string) error {
	strays, err := process.FindPreviewProcesses(renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error finding preview processes: %v\n", err)
	}
	logs := previewLogs()

	if len(strays) == 0 && len(logs) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if len(strays) > 0 {
		fmt.Printf("  - %d preview process(es)\n", len(strays))
		for _, proc := range strays {
			fmt.Printf("      PID %d  %s\n", proc.PID, proc.ThemeID())
		}
	}
	if len(logs) > 0 {
		fmt.Printf("  - %d preview log(s)\n", len(logs))
	}
	fmt.Printf("  - The debug log %s\n", logger.DefaultLogPath)

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	killed, err := process.CleanupPreviewProcesses(renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error killing preview processes: %v\n", err)
	}

	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	if killed > 0 {
		fmt.Printf("  - %d preview process(es) killed\n", killed)
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
