package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindVisibleScriptSubstitution(t *testing.T) {
	loc := Locator{Desc: "apply", Query: `//button[contains(text(), 'Apply now')]`, XPath: true}

	script := fmt.Sprintf(findVisibleScript, loc.XPath, loc.Query)

	assert.Contains(t, script, "const xpath = true;")
	assert.Contains(t, script, `Apply now`)
	// %q escaping keeps embedded quotes JS-safe.
	assert.Contains(t, script, `"//button[contains(text(), 'Apply now')]"`)
}

func TestClickFirstScriptCSSMode(t *testing.T) {
	loc := Locator{Desc: "email", Query: "#email", XPath: false}

	script := fmt.Sprintf(clickFirstScript, loc.XPath, loc.Query)

	assert.Contains(t, script, "const xpath = false;")
	assert.Contains(t, script, `"#email"`)
	assert.Contains(t, script, "scrollIntoView")
}

func TestLabelLocatorStripsQuotes(t *testing.T) {
	loc := labelLocator("Int'l Business")

	// Single quotes would break the XPath string literal.
	assert.NotContains(t, loc.Query, "Int'l")
	assert.Contains(t, loc.Query, "Intl Business")
	assert.True(t, loc.XPath)
}
