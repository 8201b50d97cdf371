package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand returns the command that opens url on the given OS.
func browserCommand(goos, url string) (*exec.Cmd, bool) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), true
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), true
	case "darwin":
		return exec.Command("open", url), true
	default:
		return nil, false
	}
}

// OpenBrowser opens the specified URL in the user's default browser
func OpenBrowser(url string) error {
	cmd, ok := browserCommand(runtime.GOOS, url)
	if !ok {
		return fmt.Errorf("no browser launcher for %s, open the link manually: %s", runtime.GOOS, url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser, open the link manually: %s: %w", url, err)
	}
	return nil
}
