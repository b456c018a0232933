// Package preview runs the splash renderer in test mode for a theme. At most
// one preview runs at a time.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/zhubert/splashctl/internal/catalog"
	serrors "github.com/zhubert/splashctl/internal/errors"
	"github.com/zhubert/splashctl/internal/logger"
)

// Callbacks receive preview state changes. Nil callbacks are skipped.
// StateChanged(true) is always delivered before the matching terminal
// notification. Terminal notifications are delivered from a monitor
// goroutine, or from Start when the renderer cannot be launched.
type Callbacks struct {
	// StateChanged is called when a preview starts or ends.
	StateChanged func(running bool)

	// Failed is called, before StateChanged(false), when the renderer could
	// not be launched or failed other than by exiting.
	Failed func(err error)
}

// session is one preview run.
type session struct {
	id     string
	theme  string
	proc   Process
	done   chan struct{}
	finish sync.Once
}

// Supervisor owns the single preview slot.
type Supervisor struct {
	renderer  string
	launcher  Launcher
	callbacks Callbacks
	log       *slog.Logger

	mu      sync.Mutex
	current *session
}

// New creates a supervisor that runs renderer through launcher. A nil
// launcher uses ExecLauncher.
func New(renderer string, launcher Launcher, callbacks Callbacks) *Supervisor {
	if launcher == nil {
		launcher = ExecLauncher{}
	}
	return &Supervisor{
		renderer:  renderer,
		launcher:  launcher,
		callbacks: callbacks,
		log:       logger.ComponentLogger("preview"),
	}
}

// IsRunning reports whether a preview is in progress.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Start launches a preview of themeID. It reports false, doing nothing,
// when themeID is empty or None or a preview is already running. Launch
// failures are reported through Failed, not the return value.
func (s *Supervisor) Start(themeID string) bool {
	if themeID == "" || themeID == catalog.NoneID {
		return false
	}

	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		s.log.Debug("preview already running, ignoring start", "theme", themeID)
		return false
	}
	sess := &session{
		id:    uuid.New().String(),
		theme: themeID,
		done:  make(chan struct{}),
	}
	s.current = sess
	s.mu.Unlock()

	log := s.log.With("session", sess.id, "theme", themeID)
	log.Info("starting preview", "renderer", s.renderer)
	if s.callbacks.StateChanged != nil {
		s.callbacks.StateChanged(true)
	}

	proc, err := s.launcher.Launch(Command{
		Name:    s.renderer,
		Args:    []string{themeID, "--test"},
		LogPath: logger.PreviewLogPath(sess.id),
	})
	if err != nil {
		log.Error("failed to launch renderer", "error", err)
		s.end(sess, serrors.PreviewStartFailed(themeID, err))
		return true
	}

	s.mu.Lock()
	sess.proc = proc
	s.mu.Unlock()

	go s.monitor(sess, log)
	return true
}

func (s *Supervisor) monitor(sess *session, log *slog.Logger) {
	err := sess.proc.Wait()

	var exited interface{ ExitCode() int }
	switch {
	case err == nil:
		log.Info("preview finished")
		s.end(sess, nil)
	case errors.As(err, &exited):
		// Renderer exit status is not meaningful.
		log.Info("preview finished", "exit_code", exited.ExitCode())
		s.end(sess, nil)
	default:
		log.Error("preview failed", "error", err)
		s.end(sess, serrors.E(serrors.Op("preview.Wait"), serrors.KindPreview, err))
	}
}

// end releases the slot and delivers the terminal notifications for sess.
// Only the first call per session has any effect.
func (s *Supervisor) end(sess *session, err error) {
	sess.finish.Do(func() {
		s.mu.Lock()
		if s.current == sess {
			s.current = nil
		}
		s.mu.Unlock()

		if err != nil && s.callbacks.Failed != nil {
			s.callbacks.Failed(err)
		}
		if s.callbacks.StateChanged != nil {
			s.callbacks.StateChanged(false)
		}
		close(sess.done)
	})
}

// Stop kills the running preview, if any. The preview ends through the
// normal exit path.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	sess := s.current
	var proc Process
	if sess != nil {
		proc = sess.proc
	}
	s.mu.Unlock()

	if proc == nil {
		return nil
	}
	s.log.Info("stopping preview", "session", sess.id, "theme", sess.theme)
	if err := proc.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Wait blocks until no preview is running or ctx is done.
func (s *Supervisor) Wait(ctx context.Context) error {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if sess == nil {
		return nil
	}
	select {
	case <-sess.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
