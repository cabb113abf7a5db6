package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Locator is a declarative description of how to find a page element.
// Lists of locators are evaluated in order; the first visible, enabled
// match wins, so list order is a documented priority.
type Locator struct {
	Desc  string
	Query string
	XPath bool
}

// findVisibleScript reports whether a visible, enabled element matches the
// query. Visibility uses offsetParent, which is null for display:none
// subtrees.
const findVisibleScript = `(() => {
	const xpath = %t;
	const query = %q;
	const candidates = [];
	if (xpath) {
		const r = document.evaluate(query, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
		for (let i = 0; i < r.snapshotLength; i++) candidates.push(r.snapshotItem(i));
	} else {
		candidates.push(...document.querySelectorAll(query));
	}
	return candidates.some(el => el.offsetParent !== null && !el.disabled);
})()`

// clickFirstScript scrolls the first visible, enabled match into view and
// activates it through a direct DOM click dispatch.
const clickFirstScript = `(() => {
	const xpath = %t;
	const query = %q;
	const candidates = [];
	if (xpath) {
		const r = document.evaluate(query, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
		for (let i = 0; i < r.snapshotLength; i++) candidates.push(r.snapshotItem(i));
	} else {
		candidates.push(...document.querySelectorAll(query));
	}
	const el = candidates.find(el => el.offsetParent !== null && !el.disabled);
	if (!el) return false;
	el.scrollIntoView({block: 'center'});
	el.click();
	return true;
})()`

// pollInterval is how often bounded waits re-evaluate their condition.
const pollInterval = 250 * time.Millisecond

// evalBool evaluates a JS expression that yields a boolean.
func evalBool(ctx context.Context, script string) (bool, error) {
	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return false, err
	}
	return ok, nil
}

// waitFor polls a boolean JS condition until it holds or the timeout
// elapses. Returns false on timeout; evaluation errors abort the wait.
func waitFor(ctx context.Context, timeout time.Duration, script string) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := evalBool(ctx, script)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// isPresent reports whether a locator currently has a visible, enabled match.
func isPresent(ctx context.Context, loc Locator) (bool, error) {
	return evalBool(ctx, fmt.Sprintf(findVisibleScript, loc.XPath, loc.Query))
}

// firstMatch probes an ordered list of locators, allowing each up to
// perLocator for a visible, enabled match to appear. The first hit wins.
// Returns the matched locator, or false when every strategy misses.
func firstMatch(ctx context.Context, locators []Locator, perLocator time.Duration) (Locator, bool, error) {
	for _, loc := range locators {
		ok, err := waitFor(ctx, perLocator, fmt.Sprintf(findVisibleScript, loc.XPath, loc.Query))
		if err != nil {
			return Locator{}, false, err
		}
		if ok {
			return loc, true, nil
		}
	}
	return Locator{}, false, nil
}

// clickLocator activates the first visible, enabled match of loc via direct
// DOM dispatch, bypassing native event simulation for reliability.
func clickLocator(ctx context.Context, loc Locator) (bool, error) {
	return evalBool(ctx, fmt.Sprintf(clickFirstScript, loc.XPath, loc.Query))
}
