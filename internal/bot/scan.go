package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	internshipsURL = baseURL + "/internships"

	// maxListings bounds how many rendered cards are read per scan.
	maxListings = 10

	// cardsWait bounds how long the scanner waits for listing cards to render.
	cardsWait = 15 * time.Second
)

// cardsPresentScript reports whether any listing card has rendered.
const cardsPresentScript = `document.querySelectorAll("div.internship_meta").length > 0`

// filterKind distinguishes the UI filter groups on the internships page.
type filterKind string

const (
	filterRemote   filterKind = "remote"
	filterCategory filterKind = "category"
	filterLocation filterKind = "location"
)

// filterGroup is one UI filter group to activate: optionally a dropdown to
// open first, then label toggles looked up by visible text.
type filterGroup struct {
	Kind filterKind
	// Dropdown is the visible text of the dropdown holding the labels;
	// empty means the labels are clickable directly.
	Dropdown string
	Labels   []string
}

// planFilters derives the ordered UI filter groups from the criteria:
// the remote toggle when RemoteOnly is set, the category dropdown, and the
// location dropdown only when not remote-only.
func planFilters(c Criteria) []filterGroup {
	var plan []filterGroup
	if c.RemoteOnly {
		plan = append(plan, filterGroup{Kind: filterRemote, Labels: []string{"Work from home"}})
	}
	if len(c.Categories) > 0 {
		plan = append(plan, filterGroup{Kind: filterCategory, Dropdown: "Category", Labels: c.Categories})
	}
	if !c.RemoteOnly && len(c.Locations) > 0 {
		plan = append(plan, filterGroup{Kind: filterLocation, Dropdown: "Location", Labels: c.Locations})
	}
	return plan
}

// labelLocator finds a filter toggle by its visible label text.
func labelLocator(label string) Locator {
	return Locator{
		Desc:  "filter label " + label,
		Query: fmt.Sprintf("//label[contains(text(), '%s')]", strings.ReplaceAll(label, "'", "")),
		XPath: true,
	}
}

// dropdownLocator finds a filter dropdown by its visible text.
func dropdownLocator(label string) Locator {
	return Locator{
		Desc:  "filter dropdown " + label,
		Query: fmt.Sprintf("//div[contains(@class, 'filter_dropdown')][contains(., '%s')]", label),
		XPath: true,
	}
}

// closeDropdownScript clicks outside an open dropdown to close it.
const closeDropdownScript = `(() => { document.body.click(); return true; })()`

// applyFilters activates the planned filter groups. Label options sit inside
// collapsible dropdowns, so each grouped dropdown is opened before its labels
// are clicked and closed afterward. A missing dropdown or label is logged
// and skipped, not fatal.
func (b *Bot) applyFilters(ctx context.Context, c Criteria) {
	b.events.Infof("Applying internship filters")
	for _, group := range planFilters(c) {
		if group.Dropdown != "" {
			clicked, err := clickLocator(ctx, dropdownLocator(group.Dropdown))
			if err != nil || !clicked {
				b.events.Warnf("%s filter dropdown not found", group.Kind)
				continue
			}
			b.pacer.Delay(ctx, 1*time.Second, 2*time.Second)
		}

		for _, label := range group.Labels {
			b.pacer.Delay(ctx, 500*time.Millisecond, 1500*time.Millisecond)
			clicked, err := clickLocator(ctx, labelLocator(label))
			if err != nil {
				b.events.Warnf("Error applying %s filter '%s': %v", group.Kind, label, err)
				continue
			}
			if !clicked {
				b.events.Warnf("%s filter '%s' not found", group.Kind, label)
			}
		}

		if group.Dropdown != "" {
			if _, err := evalBool(ctx, closeDropdownScript); err != nil {
				b.events.Warnf("Could not close %s filter dropdown: %v", group.Kind, err)
			}
			b.pacer.Delay(ctx, 1*time.Second, 3*time.Second)
		} else {
			b.pacer.Delay(ctx, 2*time.Second, 3*time.Second)
		}
	}
	b.events.Infof("Successfully applied filters")
}

// scanListings navigates to the internships page, applies filters, waits for
// cards to render, and returns the matching listings in render order. A wait
// timeout yields an empty, non-fatal result.
func (b *Bot) scanListings(ctx context.Context, c Criteria) []MatchResult {
	b.events.Infof("Navigating to internships page")
	if err := chromedp.Run(ctx, chromedp.Navigate(internshipsURL)); err != nil {
		b.events.Errorf("Error browsing internships: %v", err)
		return nil
	}
	b.pacer.Delay(ctx, 2*time.Second, 5*time.Second)

	b.applyFilters(ctx, c)

	rendered, err := waitFor(ctx, cardsWait, cardsPresentScript)
	if err != nil || !rendered {
		b.events.Warnf("No internship listings rendered")
		return nil
	}

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		b.events.Errorf("Error processing listings: %v", err)
		return nil
	}

	listings, err := ParseListings(html)
	if err != nil {
		b.events.Errorf("Error processing listings: %v", err)
		return nil
	}
	b.events.Infof("Found %d internship listings", len(listings))

	var matches []MatchResult
	for _, l := range listings {
		if m, ok := MatchListing(l, c); ok {
			matches = append(matches, m)
			b.events.Infof("Found suitable internship: %s at %s", l.Title, l.Company)
		}
	}
	return matches
}

// ParseListings extracts Listings from the first maxListings cards in the
// rendered page HTML; cards past the cap are never read, whether or not
// earlier ones parsed. The title/link come from the primary anchor, falling
// back to the older profile anchor when the primary yields an empty title or
// link. A card that yields neither is skipped.
func ParseListings(html string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing listings page: %w", err)
	}

	var listings []Listing
	doc.Find("div.internship_meta").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxListings {
			return false
		}
		anchor := card.Find("a.job-title-href").First()
		title := strings.TrimSpace(anchor.Text())
		href, _ := anchor.Attr("href")

		if title == "" || href == "" {
			anchor = card.Find("div.profile a").First()
			title = strings.TrimSpace(anchor.Text())
			href, _ = anchor.Attr("href")
		}
		if title == "" || href == "" {
			return true
		}

		var skills []string
		card.Find("div.skills_container a").Each(func(_ int, tag *goquery.Selection) {
			if s := strings.TrimSpace(tag.Text()); s != "" {
				skills = append(skills, s)
			}
		})

		listings = append(listings, Listing{
			Title:          title,
			Company:        strings.TrimSpace(card.Find("div.company_name").First().Text()),
			URL:            absoluteURL(href),
			DeclaredSkills: skills,
		})
		return true
	})

	return listings, nil
}

// absoluteURL resolves site-relative hrefs against the site base.
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + "/" + strings.TrimPrefix(href, "/")
}

// MatchListing scores a listing against the criteria skills. A listing with
// no declared skills (or empty criteria) is a vacuous match. Otherwise the
// match is the case-insensitive bidirectional substring intersection, which
// can hit on short tokens ("R" matches "HR Operations").
func MatchListing(l Listing, c Criteria) (MatchResult, bool) {
	if len(l.DeclaredSkills) == 0 || len(c.Skills) == 0 {
		return MatchResult{Listing: l}, true
	}

	var matching []string
	for _, declared := range l.DeclaredSkills {
		d := strings.ToLower(declared)
		for _, want := range c.Skills {
			w := strings.ToLower(want)
			if strings.Contains(d, w) || strings.Contains(w, d) {
				matching = append(matching, declared)
				break
			}
		}
	}
	if len(matching) == 0 {
		return MatchResult{}, false
	}
	return MatchResult{Listing: l, MatchingSkills: matching}, true
}
