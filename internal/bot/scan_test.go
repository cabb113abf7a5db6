package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFiltersRemoteOnlySkipsLocations(t *testing.T) {
	c := Criteria{
		Categories: []string{"Web Development"},
		Locations:  []string{"Bangalore", "Delhi"},
		RemoteOnly: true,
	}

	plan := planFilters(c)

	for _, group := range plan {
		assert.NotEqual(t, filterLocation, group.Kind)
	}
	assert.Equal(t, filterRemote, plan[0].Kind)
}

func TestPlanFiltersOnSiteIncludesLocations(t *testing.T) {
	c := Criteria{
		Categories: []string{"Python"},
		Locations:  []string{"Bangalore"},
		RemoteOnly: false,
	}

	plan := planFilters(c)

	require.Len(t, plan, 2)
	assert.Equal(t, filterGroup{Kind: filterCategory, Dropdown: "Category", Labels: []string{"Python"}}, plan[0])
	assert.Equal(t, filterGroup{Kind: filterLocation, Dropdown: "Location", Labels: []string{"Bangalore"}}, plan[1])
}

func TestPlanFiltersDropdownGrouping(t *testing.T) {
	c := Criteria{
		Categories: []string{"Python", "Web Development"},
		RemoteOnly: true,
	}

	plan := planFilters(c)
	require.Len(t, plan, 2)

	// The remote toggle is clickable directly; category and location labels
	// live inside dropdowns that must be opened first.
	assert.Empty(t, plan[0].Dropdown)
	assert.Equal(t, "Category", plan[1].Dropdown)
	assert.Equal(t, []string{"Python", "Web Development"}, plan[1].Labels)

	// Empty groups plan no dropdown interaction at all.
	assert.Empty(t, planFilters(Criteria{RemoteOnly: false}))
}

func TestMatchListingIntersection(t *testing.T) {
	c := Criteria{Skills: []string{"Python"}, RemoteOnly: true}

	m, ok := MatchListing(Listing{Title: "Backend Intern", DeclaredSkills: []string{"Python", "Django"}}, c)
	require.True(t, ok)
	assert.Equal(t, []string{"Python"}, m.MatchingSkills)

	_, ok = MatchListing(Listing{Title: "Java Intern", DeclaredSkills: []string{"Java"}}, c)
	assert.False(t, ok)
}

func TestMatchListingVacuousMatch(t *testing.T) {
	c := Criteria{Skills: []string{"Python"}}

	// No declared skills: the site-side filters already narrowed candidates.
	m, ok := MatchListing(Listing{Title: "Generalist Intern"}, c)
	require.True(t, ok)
	assert.Empty(t, m.MatchingSkills)

	// No criteria skills behaves the same way.
	_, ok = MatchListing(Listing{DeclaredSkills: []string{"Rust"}}, Criteria{})
	assert.True(t, ok)
}

func TestMatchListingScenario(t *testing.T) {
	c := Criteria{Skills: []string{"Python"}, RemoteOnly: true}
	listings := []Listing{
		{Title: "one", DeclaredSkills: []string{"Python", "Django"}},
		{Title: "two", DeclaredSkills: []string{"Java"}},
		{Title: "three"},
	}

	var matched []string
	for _, l := range listings {
		if _, ok := MatchListing(l, c); ok {
			matched = append(matched, l.Title)
		}
	}
	assert.Equal(t, []string{"one", "three"}, matched)
}

func TestMatchListingBidirectionalSubstring(t *testing.T) {
	// The bidirectional test matches when either side contains the other.
	c := Criteria{Skills: []string{"JavaScript Frameworks"}}
	_, ok := MatchListing(Listing{DeclaredSkills: []string{"JavaScript"}}, c)
	assert.True(t, ok)

	// Known false-positive source on short tokens, retained deliberately.
	c = Criteria{Skills: []string{"R"}}
	_, ok = MatchListing(Listing{DeclaredSkills: []string{"HR Operations"}}, c)
	assert.True(t, ok)
}

const listingsPage = `<html><body>
<div class="internship_meta">
  <div class="profile"><a href="/internship/detail/backend-1">ignored fallback</a></div>
  <a class="job-title-href" href="/internship/detail/backend-1">Backend Developer Intern</a>
  <div class="company_name">Acme Corp</div>
  <div class="skills_container"><a>Python</a><a>Django</a></div>
</div>
<div class="internship_meta">
  <div class="profile"><a href="/internship/detail/design-2">Design Intern</a></div>
  <div class="company_name">Pixel Studio</div>
</div>
<div class="internship_meta">
  <div class="company_name">No Anchor Inc</div>
</div>
</body></html>`

func TestParseListings(t *testing.T) {
	listings, err := ParseListings(listingsPage)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	// Primary anchor wins when present.
	assert.Equal(t, "Backend Developer Intern", listings[0].Title)
	assert.Equal(t, "https://internshala.com/internship/detail/backend-1", listings[0].URL)
	assert.Equal(t, "Acme Corp", listings[0].Company)
	assert.Equal(t, []string{"Python", "Django"}, listings[0].DeclaredSkills)

	// Fallback anchor covers cards without the primary class.
	assert.Equal(t, "Design Intern", listings[1].Title)
	assert.Empty(t, listings[1].DeclaredSkills)
}

func TestParseListingsCapsAtTen(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		sb.WriteString(fmt.Sprintf(`<div class="internship_meta">
			<a class="job-title-href" href="/internship/detail/%d">Intern %d</a>
			<div class="company_name">Co %d</div></div>`, i, i, i))
	}
	sb.WriteString("</body></html>")

	listings, err := ParseListings(sb.String())
	require.NoError(t, err)
	assert.Len(t, listings, maxListings)
	// Insertion order is render order.
	assert.Equal(t, "Intern 0", listings[0].Title)
}

func TestParseListingsCapCountsCards(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	// Two leading cards without any usable anchor.
	sb.WriteString(`<div class="internship_meta"><div class="company_name">No Anchor A</div></div>`)
	sb.WriteString(`<div class="internship_meta"><div class="company_name">No Anchor B</div></div>`)
	for i := 0; i < 12; i++ {
		sb.WriteString(fmt.Sprintf(`<div class="internship_meta">
			<a class="job-title-href" href="/internship/detail/%d">Intern %d</a>
			<div class="company_name">Co %d</div></div>`, i, i, i))
	}
	sb.WriteString("</body></html>")

	listings, err := ParseListings(sb.String())
	require.NoError(t, err)

	// The cap bounds cards read, so skipped cards still consume it: the
	// first 10 cards yield 8 listings and card 11 onward is never read.
	require.Len(t, listings, 8)
	assert.Equal(t, "Intern 0", listings[0].Title)
	assert.Equal(t, "Intern 7", listings[7].Title)
}

func TestParseListingsEmptyPage(t *testing.T) {
	listings, err := ParseListings("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://internshala.com/internship/detail/x", absoluteURL("/internship/detail/x"))
	assert.Equal(t, "https://example.com/a", absoluteURL("https://example.com/a"))
}
