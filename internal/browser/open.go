package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the command that opens url in the default browser on
// the current OS.
func Command(url string) (*exec.Cmd, error) {
	return commandFor(runtime.GOOS, url)
}

func commandFor(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Open opens the specified URL in the user's default browser.
func Open(url string) error {
	cmd, err := Command(url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
