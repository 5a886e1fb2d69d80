package utils

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// FileURL turns a local path into a file:// URL.
func FileURL(path string) (string, error) {
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: fullPath}
	return u.String(), nil
}

// browserCommand returns the launcher for the current platform.
func browserCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// OpenBrowser shows path in the system's default browser without waiting
// for the browser to exit.
func OpenBrowser(path string) error {
	target, err := FileURL(path)
	if err != nil {
		return err
	}
	name, args := browserCommand(runtime.GOOS, target)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
