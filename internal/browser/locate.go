// Package browser - locate.go resolves the local Chrome executable path.
package browser

import (
	"os"
	"path/filepath"
	"runtime"
)

// chromeCandidates returns well-known Chrome install locations for the given
// GOOS. Order matters: the first existing path wins.
func chromeCandidates(goos string) []string {
	switch goos {
	case "windows":
		programFiles := os.Getenv("PROGRAMFILES")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		programFilesX86 := os.Getenv("PROGRAMFILES(X86)")
		if programFilesX86 == "" {
			programFilesX86 = `C:\Program Files (x86)`
		}
		return []string{
			filepath.Join(programFiles, `Google\Chrome\Application\chrome.exe`),
			filepath.Join(programFilesX86, `Google\Chrome\Application\chrome.exe`),
			filepath.Join(os.Getenv("LOCALAPPDATA"), `Google\Chrome\Application\chrome.exe`),
		}
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chrome.app/Contents/MacOS/Chrome",
		}
	case "linux":
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
		}
	default:
		return nil
	}
}

// LocateChrome returns the path to a local Chrome executable, or "" if none
// of the well-known locations exist. An empty result delegates discovery to
// chromedp's default lookup.
func LocateChrome() string {
	for _, path := range chromeCandidates(runtime.GOOS) {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
