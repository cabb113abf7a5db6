package bot

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	loginURL  = baseURL + "/login"
	loginWait = 10 * time.Second
)

// cookiePopupLocator matches consent/cookie popup dismiss buttons.
var cookiePopupLocator = Locator{
	Desc:  "cookie consent accept",
	Query: `//button[contains(text(), 'Accept') or contains(text(), 'Got it')]`,
	XPath: true,
}

// loginButtonLocator matches the login form submit control.
var loginButtonLocator = Locator{
	Desc:  "login button",
	Query: `//button[contains(text(), 'Login')]`,
	XPath: true,
}

// visibleErrorScript returns the text of the first visible error/alert
// element, or "" when none is shown.
const visibleErrorScript = `(() => {
	const r = document.evaluate("//div[contains(@class, 'error') or contains(@class, 'alert')]",
		document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
	for (let i = 0; i < r.snapshotLength; i++) {
		const el = r.snapshotItem(i);
		if (el.offsetParent !== null && el.innerText.trim()) return el.innerText.trim();
	}
	return "";
})()`

// postLoginURLScript holds the set of post-login destinations that signal a
// successful redirect.
const postLoginURLScript = `["dashboard", "student/profile", "home"].some(s => location.href.includes(s))`

// login drives the login form and verifies the outcome. Checks are ordered
// from most to least specific: explicit on-page error text, then a URL still
// on the login path, then a bounded wait for a post-login destination.
func (b *Bot) login(ctx context.Context) error {
	b.events.Infof("Navigating to Internshala login page")
	if err := chromedp.Run(ctx, chromedp.Navigate(loginURL)); err != nil {
		return &LoginError{Reason: "could not open login page", Cause: err}
	}
	b.pacer.Delay(ctx, 2*time.Second, 4*time.Second)

	b.dismissPopups(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, loginWait)
	err := chromedp.Run(waitCtx, chromedp.WaitVisible("#email", chromedp.ByID))
	cancel()
	if err != nil {
		return &LoginError{Reason: "email field not found", Cause: err}
	}

	b.pacer.Delay(ctx, 1*time.Second, 4*time.Second)
	if err := b.pacer.TypeHuman(ctx, "#email", b.opts.Email); err != nil {
		return &LoginError{Reason: "could not enter email", Cause: err}
	}
	b.pacer.Delay(ctx, 1*time.Second, 4*time.Second)
	if err := b.pacer.TypeHuman(ctx, "#password", b.opts.Password); err != nil {
		return &LoginError{Reason: "could not enter password", Cause: err}
	}

	if err := b.pacer.SimulateMouseMovement(ctx); err != nil {
		b.events.Warnf("Mouse movement simulation failed: %v", err)
	}

	b.pacer.Delay(ctx, 1*time.Second, 4*time.Second)
	clicked, err := clickLocator(ctx, loginButtonLocator)
	if err != nil || !clicked {
		return &LoginError{Reason: "login button not found", Cause: err}
	}

	b.pacer.Delay(ctx, 1*time.Second, 2*time.Second)

	var errText string
	if err := chromedp.Run(ctx, chromedp.Evaluate(visibleErrorScript, &errText)); err == nil && errText != "" {
		return &LoginError{Reason: errText}
	}

	var currentURL string
	if err := chromedp.Run(ctx, chromedp.Location(&currentURL)); err != nil {
		return &LoginError{Reason: "could not read current URL", Cause: err}
	}
	if strings.Contains(currentURL, "/login") {
		return &LoginError{Reason: "still on login page"}
	}

	ok, err := waitFor(ctx, loginWait, postLoginURLScript)
	if err != nil {
		return &LoginError{Reason: "waiting for post-login redirect", Cause: err}
	}
	if !ok {
		return &LoginError{Reason: "timeout"}
	}

	b.events.Infof("Successfully logged in")
	return nil
}

// dismissPopups closes any consent/cookie popup. Best-effort and non-fatal.
func (b *Bot) dismissPopups(ctx context.Context) {
	present, err := isPresent(ctx, cookiePopupLocator)
	if err != nil || !present {
		return
	}
	b.pacer.Delay(ctx, 500*time.Millisecond, time.Second)
	if clicked, err := clickLocator(ctx, cookiePopupLocator); err == nil && clicked {
		b.events.Infof("Dismissed popup")
	}
}

// currentLocation returns the page URL, or "" when it cannot be read.
func currentLocation(ctx context.Context) string {
	var u string
	if err := chromedp.Run(ctx, chromedp.Location(&u)); err != nil {
		return ""
	}
	return u
}
