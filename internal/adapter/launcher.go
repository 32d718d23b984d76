package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens movie pages in an external browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // extra arguments placed before the URL
	goos    string
	logger  *slog.Logger

	// start runs the prepared command; replaced in tests
	start func(cmd *exec.Cmd) error
}

// launchPath defines a single way to open a URL on a platform
type launchPath struct {
	path string   // command name looked up in PATH
	args []string // arguments placed before the URL
}

// systemOpeners lists the default URL handlers per platform, tried in order
var systemOpeners = map[string][]launchPath{
	"darwin":  {{path: "open"}},
	"linux":   {{path: "xdg-open"}, {path: "gio", args: []string{"open"}}, {path: "sensible-browser"}},
	"windows": {{path: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}},
}

// NewLauncher creates a Launcher. command may carry arguments
// ("firefox --new-tab"); empty uses the platform opener.
func NewLauncher(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(command)
	l := &Launcher{
		goos:   runtime.GOOS,
		logger: logger,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	if len(fields) > 0 {
		l.command = fields[0]
		l.args = fields[1:]
	}
	return l
}

// Open opens url with the configured command or the system default
func (l *Launcher) Open(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	// Tier 1: User configured a specific command
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("opening with configured command", "command", l.command, "args", args)
		return l.start(exec.Command(l.command, args...))
	}

	// Tier 2: Platform openers in order
	candidates, ok := systemOpeners[l.goos]
	if !ok {
		candidates = systemOpeners["linux"]
	}
	for _, lp := range candidates {
		if _, err := exec.LookPath(lp.path); err != nil {
			l.logger.Debug("opener not available", "path", lp.path, "error", err)
			continue
		}
		args := append(append([]string{}, lp.args...), url)
		if err := l.start(exec.Command(lp.path, args...)); err != nil {
			l.logger.Debug("opener failed", "path", lp.path, "error", err)
			continue
		}
		l.logger.Info("opened with system default", "os", l.goos, "path", lp.path, "url", url)
		return nil
	}

	return fmt.Errorf("no URL opener found for %s", l.goos)
}
