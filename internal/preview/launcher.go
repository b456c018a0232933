package preview

import (
	"os"
	"os/exec"
)

// Command is one renderer invocation.
type Command struct {
	Name string
	Args []string
	// LogPath receives the renderer's stdout and stderr. Empty discards them.
	LogPath string
}

// Process is a started renderer.
type Process interface {
	// Wait blocks until the process exits. An error implementing
	// ExitCode() int means the process ran and exited; any other error is a
	// runtime failure.
	Wait() error
	// Kill terminates the process.
	Kill() error
}

// Launcher starts renderer processes.
type Launcher interface {
	Launch(cmd Command) (Process, error)
}

// ExecLauncher starts renderers with os/exec.
type ExecLauncher struct{}

// Launch starts cmd without waiting for it.
func (ExecLauncher) Launch(c Command) (Process, error) {
	cmd := exec.Command(c.Name, c.Args...)

	var logFile *os.File
	if c.LogPath != "" {
		f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err == nil {
			logFile = f
			cmd.Stdout = f
			cmd.Stderr = f
		}
	}

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}
	return &execProcess{cmd: cmd, logFile: logFile}, nil
}

type execProcess struct {
	cmd     *exec.Cmd
	logFile *os.File
}

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	if p.logFile != nil {
		p.logFile.Close()
	}
	return err
}

func (p *execProcess) Kill() error {
	return p.cmd.Process.Kill()
}
