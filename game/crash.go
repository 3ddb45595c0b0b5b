package game

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/ncruces/zenity"
)

// ReportCrash logs a fatal error and, when dialog is set, shows it to the
// user before the process exits.
func ReportCrash(err error, dialog bool) {
	if err == nil {
		return
	}
	slog.Error("fatal", "error", err)
	if !dialog {
		return
	}
	if derr := zenity.Error(
		fmt.Sprintf("Orbs stopped unexpectedly.\n\n%v", err),
		zenity.Title("Orbs"),
		zenity.ErrorIcon,
	); derr != nil {
		slog.Warn("crash dialog failed", "error", derr)
	}
}

// HandleCrash reports a recovered panic with its stack and exits.
// Use as: defer func() { game.HandleCrash(recover(), true) }()
func HandleCrash(r any, dialog bool) {
	if r == nil {
		return
	}
	slog.Error("panic", "value", fmt.Sprint(r), "stack", string(debug.Stack()))
	ReportCrash(fmt.Errorf("panic: %v", r), dialog)
	os.Exit(1)
}
