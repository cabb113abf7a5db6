package bot

import (
	"context"

	"github.com/pragyesh/internauto/internal/browser"
	"github.com/pragyesh/internauto/internal/humanize"
)

const baseURL = "https://internshala.com"

// Options configures one automation run.
type Options struct {
	// Email and Password are the Internshala credentials.
	Email    string
	Password string
	// Limit caps how many applications are submitted. Values below 1 fall
	// back to DefaultLimit.
	Limit int
	// Headless runs the browser without a visible window.
	Headless bool
	// ChromeBinary optionally overrides browser executable discovery.
	ChromeBinary string
	// Sink optionally receives per-run log events.
	Sink EventSink
}

// DefaultLimit is the application cap used when none is configured.
const DefaultLimit = 5

// Bot drives one browser session through the full automation workflow.
// A Bot is single-use and single-threaded; it owns its session exclusively
// for the run's duration.
type Bot struct {
	opts   Options
	pacer  *humanize.Pacer
	events *events
}

// New creates a Bot for one run.
func New(opts Options) *Bot {
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	return &Bot{
		opts:   opts,
		pacer:  humanize.NewPacer(),
		events: &events{sink: opts.Sink},
	}
}

// Run executes the full workflow: authenticate, extract preferences, scan
// and filter listings, then apply up to the configured cap. The browser
// session is released on every exit path, and any panic is converted to a
// failed RunResult at this boundary.
func (b *Bot) Run(ctx context.Context) (result RunResult) {
	defer func() {
		if r := recover(); r != nil {
			b.events.Errorf("Automation error: %v", r)
			result = RunResult{Success: false}
		}
	}()

	session, err := browser.Acquire(ctx, browser.Options{
		Headless:   b.opts.Headless,
		BinaryPath: b.opts.ChromeBinary,
	})
	if err != nil {
		b.events.Errorf("%v", err)
		return RunResult{Success: false}
	}
	defer session.Release()

	pageCtx := session.Context()

	if err := b.login(pageCtx); err != nil {
		b.events.Errorf("Login failed, cannot proceed: %v", err)
		return RunResult{Success: false}
	}

	criteria, extracted := b.extractPreferences(pageCtx)
	if !extracted {
		b.events.Warnf("Preference extraction failed, proceeding with defaults")
	}

	matches := b.scanListings(pageCtx, criteria)
	if len(matches) == 0 {
		b.events.Infof("No suitable internships found matching your criteria")
		return RunResult{Success: true}
	}
	b.events.Infof("Found %d suitable internships", len(matches))

	listings := make([]Listing, len(matches))
	for i, m := range matches {
		listings[i] = m.Listing
	}

	submitted, outcomes := applyBatch(listings, b.opts.Limit, func(l Listing) ApplicationOutcome {
		return b.applyToListing(pageCtx, l)
	})
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeSubmitted:
			b.events.Infof("Successfully applied to %s", o.Listing.Title)
		case OutcomeAlreadyApplied:
			// already logged at detection time
		case OutcomeFailed:
			b.events.Errorf("Error applying to %s: %s", o.Listing.Title, o.Reason)
		}
	}
	if submitted >= b.opts.Limit {
		b.events.Infof("Reached maximum application limit of %d", b.opts.Limit)
	}

	return RunResult{Success: true, SubmittedCount: submitted}
}

// applyBatch invokes submit for each listing in order until the submitted
// count reaches limit. An attempt already in progress is never cancelled;
// failures and already-applied skips do not consume the limit budget.
func applyBatch(listings []Listing, limit int, submit func(Listing) ApplicationOutcome) (int, []ApplicationOutcome) {
	submitted := 0
	var outcomes []ApplicationOutcome

	for _, l := range listings {
		if submitted >= limit {
			break
		}
		outcome := submit(l)
		outcomes = append(outcomes, outcome)
		if outcome.Kind == OutcomeSubmitted {
			submitted++
		}
	}
	return submitted, outcomes
}
