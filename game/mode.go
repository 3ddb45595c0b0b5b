package game

import (
	"path/filepath"
	"strings"

	"github.com/pthm-cable/orbs/systems"
)

// Launch is what the host was asked to do.
type Launch uint8

const (
	LaunchRun       Launch = iota // animate
	LaunchConfigure               // screensaver settings requested, nothing to show
	LaunchPreview                 // screensaver preview pane requested, not supported
)

func (l Launch) String() string {
	switch l {
	case LaunchConfigure:
		return "configure"
	case LaunchPreview:
		return "preview"
	default:
		return "run"
	}
}

// DetectMode picks the display mode from how the binary was started.
// A .scr executable, a /s argument or the fullscreen flag select
// fullscreen. /c and /p ask for the settings dialog and the preview pane.
func DetectMode(exe string, args []string, fullscreen bool) (systems.Mode, Launch) {
	mode := systems.ModeNormal
	if fullscreen || strings.EqualFold(filepath.Ext(exe), ".scr") {
		mode = systems.ModeFullscreen
	}

	if len(args) == 0 {
		return mode, LaunchRun
	}

	// Windows passes "/c:1234" or "/p 1234" with a window handle
	arg := strings.ToLower(args[0])
	if i := strings.IndexByte(arg, ':'); i >= 0 {
		arg = arg[:i]
	}
	switch arg {
	case "/s":
		return systems.ModeFullscreen, LaunchRun
	case "/c":
		return mode, LaunchConfigure
	case "/p":
		return mode, LaunchPreview
	}
	return mode, LaunchRun
}
