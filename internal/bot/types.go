// Package bot implements the Internshala automation engine: login,
// preference extraction, listing scan/filter, and per-listing application
// submission, orchestrated by a single-threaded run controller.
package bot

// Criteria holds the user's derived or defaulted application preferences.
// Built once per run; read-only afterward.
type Criteria struct {
	Skills     []string
	Locations  []string
	Categories []string
	RemoteOnly bool
}

// DefaultCriteria returns the fixed fallback preference set used when
// profile extraction fails entirely.
func DefaultCriteria() Criteria {
	return Criteria{
		Skills:     []string{"Python", "Django", "Flask", "React", "JavaScript"},
		Locations:  []string{"Remote", "Bangalore", "Delhi"},
		Categories: []string{"Web Development", "Python", "Machine Learning"},
		RemoteOnly: true,
	}
}

// Listing is one scraped internship posting from a rendered card.
// Ephemeral; never persisted.
type Listing struct {
	Title          string
	Company        string
	URL            string
	DeclaredSkills []string
}

// MatchResult pairs a Listing with the subset of its declared skills that
// intersect the criteria skills.
type MatchResult struct {
	Listing        Listing
	MatchingSkills []string
}

// OutcomeKind is the terminal state of one application attempt.
type OutcomeKind string

const (
	// OutcomeSubmitted means the application was submitted (possibly with an
	// unconfirmed but assumed-successful submission).
	OutcomeSubmitted OutcomeKind = "submitted"
	// OutcomeAlreadyApplied means the listing was skipped because an
	// application already exists.
	OutcomeAlreadyApplied OutcomeKind = "already_applied"
	// OutcomeFailed means the attempt failed; Reason carries the cause.
	OutcomeFailed OutcomeKind = "failed"
)

// ApplicationOutcome records the terminal state of one attempted listing.
// Accumulated for logging only; only the submitted count is externally
// meaningful.
type ApplicationOutcome struct {
	Listing Listing
	Kind    OutcomeKind
	Reason  string
}

// RunResult is the terminal result of one automation run.
type RunResult struct {
	Success        bool
	SubmittedCount int
}
