package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromeCandidatesLinux(t *testing.T) {
	paths := chromeCandidates("linux")

	assert.Equal(t, []string{
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}, paths)
}

func TestChromeCandidatesDarwin(t *testing.T) {
	paths := chromeCandidates("darwin")

	assert.Len(t, paths, 2)
	assert.Contains(t, paths[0], "Google Chrome.app")
}

func TestChromeCandidatesWindowsOrder(t *testing.T) {
	paths := chromeCandidates("windows")

	// Program Files comes before Program Files (x86) and LOCALAPPDATA.
	assert.Len(t, paths, 3)
	assert.Contains(t, paths[0], "chrome.exe")
}

func TestChromeCandidatesUnknownOS(t *testing.T) {
	assert.Nil(t, chromeCandidates("plan9"))
}
