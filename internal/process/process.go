// Package process provides utilities for finding and cleaning up splash
// renderer processes left running in test mode.
package process

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	serrors "github.com/zhubert/splashctl/internal/errors"
	"github.com/zhubert/splashctl/internal/logger"
)

// RendererInstalled returns true if the renderer binary is on the PATH.
func RendererInstalled(renderer string) bool {
	_, err := exec.LookPath(renderer)
	return err == nil
}

// CheckRenderer returns the resolved renderer path, or a not-found error.
func CheckRenderer(renderer string) (string, error) {
	path, err := exec.LookPath(renderer)
	if err != nil {
		return "", serrors.RendererNotFound(renderer)
	}
	return path, nil
}

// PreviewProcess represents a renderer found running in test mode.
type PreviewProcess struct {
	PID     int    // Process ID
	Command string // Full command line
}

// ThemeID returns the theme the renderer was started for, if it can be
// read from the command line.
func (p PreviewProcess) ThemeID() string {
	return extractThemeID(p.Command)
}

// previewPattern returns the pgrep pattern matching test-mode invocations
// of renderer.
func previewPattern(renderer string) string {
	return regexp.QuoteMeta(filepath.Base(renderer)) + ".*--test"
}

// FindPreviewProcesses finds renderer processes started with --test, such as
// previews orphaned by a crash.
func FindPreviewProcesses(renderer string) ([]PreviewProcess, error) {
	var processes []PreviewProcess
	log := logger.ComponentLogger("process")

	switch runtime.GOOS {
	case "darwin", "linux":
		cmd := exec.Command("pgrep", "-f", previewPattern(renderer))
		output, err := cmd.Output()
		if err != nil {
			// pgrep returns exit code 1 if no processes found
			if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
				return processes, nil
			}
			return nil, err
		}

		for _, pidStr := range strings.Fields(string(output)) {
			pid, err := strconv.Atoi(pidStr)
			if err != nil {
				continue
			}

			psOutput, err := exec.Command("ps", "-p", pidStr, "-o", "args=").Output()
			if err != nil {
				continue
			}
			command := strings.TrimSpace(string(psOutput))
			// pgrep -f also matches shells whose script mentions the pattern.
			if !isPreviewCommand(command, renderer) {
				continue
			}

			processes = append(processes, PreviewProcess{PID: pid, Command: command})
		}

	case "windows":
		image := strings.TrimSuffix(filepath.Base(renderer), ".exe") + ".exe"
		cmd := exec.Command("tasklist", "/FI", "IMAGENAME eq "+image, "/FO", "CSV", "/NH")
		output, err := cmd.Output()
		if err != nil {
			return nil, err
		}
		processes = parseTasklist(string(output))
	}

	log.Debug("found preview processes", "renderer", renderer, "count", len(processes))
	return processes, nil
}

// isPreviewCommand reports whether cmdLine runs renderer with --test.
func isPreviewCommand(cmdLine, renderer string) bool {
	fields := strings.Fields(cmdLine)
	if len(fields) == 0 || filepath.Base(fields[0]) != filepath.Base(renderer) {
		return false
	}
	for _, f := range fields[1:] {
		if f == "--test" {
			return true
		}
	}
	return false
}

// extractThemeID returns the first positional argument of a renderer
// command line.
func extractThemeID(cmdLine string) string {
	fields := strings.Fields(cmdLine)
	if len(fields) < 2 {
		return ""
	}
	for _, f := range fields[1:] {
		if !strings.HasPrefix(f, "-") {
			return f
		}
	}
	return ""
}

func parseTasklist(output string) []PreviewProcess {
	var processes []PreviewProcess
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		// Remove quotes from PID field
		pid, err := strconv.Atoi(strings.Trim(strings.TrimSpace(fields[1]), "\""))
		if err != nil {
			continue
		}
		processes = append(processes, PreviewProcess{
			PID:     pid,
			Command: strings.Trim(fields[0], "\""),
		})
	}
	return processes
}

// KillProcess kills a process by PID.
func KillProcess(pid int) error {
	switch runtime.GOOS {
	case "darwin", "linux":
		return exec.Command("kill", "-9", strconv.Itoa(pid)).Run()
	case "windows":
		return exec.Command("taskkill", "/F", "/PID", strconv.Itoa(pid)).Run()
	}
	return nil
}

// CleanupPreviewProcesses kills every test-mode renderer process.
// Returns the number of processes killed.
func CleanupPreviewProcesses(renderer string) (int, error) {
	procs, err := FindPreviewProcesses(renderer)
	if err != nil {
		return 0, err
	}

	log := logger.ComponentLogger("process")
	killed := 0
	for _, proc := range procs {
		log.Info("killing preview renderer", "pid", proc.PID, "theme", proc.ThemeID())
		if err := KillProcess(proc.PID); err != nil {
			log.Error("failed to kill process", "pid", proc.PID, "error", err)
			continue
		}
		killed++
	}
	return killed, nil
}
