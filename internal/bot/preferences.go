package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	profileURL     = baseURL + "/student/profile"
	preferencesURL = baseURL + "/student/preferences"
)

// textListScript collects trimmed, non-empty text from every element matched
// by an XPath expression.
const textListScript = `(() => {
	const r = document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
	const out = [];
	for (let i = 0; i < r.snapshotLength; i++) {
		const t = r.snapshotItem(i).innerText.trim();
		if (t) out.push(t);
	}
	return out;
})()`

// remotePreferenceScript reads the work-from-home checkbox state. Returns
// true when the checkbox is absent, matching the documented default.
const remotePreferenceScript = `(() => {
	const r = document.evaluate("//label[contains(text(), 'work from home')]//input",
		document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null);
	if (!r.singleNodeValue) return true;
	return r.singleNodeValue.checked;
})()`

const (
	skillsQuery     = "//div[contains(@class, 'skills_section')]//span[contains(@class, 'skill_item')]"
	locationsQuery  = "//div[contains(@class, 'preference_locations')]//li"
	categoriesQuery = "//div[contains(@class, 'preference_categories')]//li"
)

// extractPreferences scrapes the profile and preferences pages into a
// Criteria. Each sub-extraction is independent and non-fatal; a failure only
// yields an empty value for that field. When the scrape cannot proceed at
// all, the whole Criteria is replaced by DefaultCriteria and ok is false.
func (b *Bot) extractPreferences(ctx context.Context) (Criteria, bool) {
	b.events.Infof("Navigating to profile page to extract preferences")
	if err := chromedp.Run(ctx, chromedp.Navigate(profileURL)); err != nil {
		b.events.Errorf("Error extracting profile preferences: %v", err)
		b.events.Warnf("Using default preferences instead")
		return DefaultCriteria(), false
	}
	b.pacer.Delay(ctx, 2*time.Second, 4*time.Second)

	var c Criteria

	skills, err := b.textList(ctx, skillsQuery)
	if err != nil {
		b.events.Warnf("Could not extract skills: %v", err)
	} else {
		c.Skills = skills
		b.events.Infof("Extracted %d skills from profile", len(skills))
	}

	if err := chromedp.Run(ctx, chromedp.Navigate(preferencesURL)); err != nil {
		b.events.Errorf("Error extracting profile preferences: %v", err)
		b.events.Warnf("Using default preferences instead")
		return DefaultCriteria(), false
	}
	b.pacer.Delay(ctx, 2*time.Second, 3*time.Second)

	locations, err := b.textList(ctx, locationsQuery)
	if err != nil {
		b.events.Warnf("Could not extract locations: %v", err)
	} else {
		c.Locations = locations
		b.events.Infof("Extracted %d preferred locations", len(locations))
	}

	categories, err := b.textList(ctx, categoriesQuery)
	if err != nil {
		b.events.Warnf("Could not extract categories: %v", err)
	} else {
		c.Categories = categories
		b.events.Infof("Extracted %d preferred categories", len(categories))
	}

	c.RemoteOnly = true
	var remote bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(remotePreferenceScript, &remote)); err != nil {
		b.events.Warnf("Could not extract work from home preference: %v", err)
	} else {
		c.RemoteOnly = remote
		b.events.Infof("Work from home preference: %t", remote)
	}

	b.events.Infof("Successfully extracted preferences from profile")
	return c, true
}

func (b *Bot) textList(ctx context.Context, xpathQuery string) ([]string, error) {
	var out []string
	script := fmt.Sprintf(textListScript, xpathQuery)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &out)); err != nil {
		return nil, err
	}
	return out, nil
}
