// Package robot produces machine-readable output for scripts and agents.
package robot

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal (and before any TUI starts).
//
// Lipgloss/Termenv background detection can emit OSC/DSR control sequences to
// stdout when the terminal is probed. Those sequences break JSON parsers
// consuming robot output, so robot invocations set CI=1 early; Termenv uses
// CI to disable TTY probing.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("NV_ROBOT") == "1", os.Getenv("NV_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--robot-") || strings.HasPrefix(arg, "--export-") {
			return true
		}
		switch arg {
		case "--version", "--help", "-h":
			return true
		}
	}

	return false
}
