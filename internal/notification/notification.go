// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/splashctl/internal/logger"
)

// AppName is the title used for splashctl notifications.
const AppName = "splashctl"

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

var (
	mu       sync.RWMutex
	notifier notifyFunc = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores delivery through beeep.
func ResetNotifier() {
	mu.Lock()
	defer mu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On Linux, beeep uses D-Bus or notify-send.
func Send(title, message string) error {
	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title, "message", message)

	mu.RLock()
	fn := notifier
	mu.RUnlock()

	// Empty icon lets beeep pick the platform default.
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// PreviewFailed reports that the renderer could not preview a theme.
func PreviewFailed(themeName string, err error) error {
	msg := "Could not preview " + themeName
	if err != nil {
		msg += ": " + err.Error()
	}
	return Send(AppName, msg)
}

// Saved reports that a theme was made the boot splash.
func Saved(themeName string) error {
	return Send(AppName, themeName+" will be shown at boot")
}
