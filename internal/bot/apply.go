package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// probeTimeout is the per-strategy wait when probing locator lists.
	probeTimeout = 5 * time.Second
	// submitProbeTimeout is shorter: by submit time the form is rendered.
	submitProbeTimeout = 2 * time.Second
	// formWait bounds the wait for an application surface to appear.
	formWait = 10 * time.Second
	// confirmWait bounds the wait for a post-submit success signal.
	confirmWait = 15 * time.Second
)

// alreadyAppliedScript collects the text of divs whose own content carries
// an already-applied phrasing. Scoped to divs so incidental page text such
// as applicant counts cannot match.
const alreadyAppliedScript = `(() => {
	const texts = [];
	const collect = q => {
		const r = document.evaluate(q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
		for (let i = 0; i < r.snapshotLength; i++) {
			const t = r.snapshotItem(i).innerText.trim();
			if (t) texts.push(t);
		}
	};
	collect("//div[contains(text(), 'already applied')]");
	collect("//div[contains(text(), 'Already applied')]");
	collect("//div[contains(text(), 'Applied')]");
	return texts;
})()`

// applyLocators are the candidate apply-control strategies, in priority order.
var applyLocators = []Locator{
	{Desc: "apply now button", Query: `//button[contains(text(), 'Apply now')]`, XPath: true},
	{Desc: "apply now link", Query: `//a[contains(text(), 'Apply now')]`, XPath: true},
	{Desc: "apply_button button", Query: `//button[contains(@class, 'apply_button')]`, XPath: true},
	{Desc: "apply_button link", Query: `//a[contains(@class, 'apply_button')]`, XPath: true},
	{Desc: "apply_button div", Query: `//div[contains(@class, 'apply_button')]`, XPath: true},
	{Desc: "primary apply button", Query: `//button[contains(@class, 'btn-primary')][contains(text(), 'Apply')]`, XPath: true},
	{Desc: "primary apply link", Query: `//a[contains(@class, 'btn-primary')][contains(text(), 'Apply')]`, XPath: true},
}

// proceedLocators find the intermediate "Proceed to Application" control.
// Absence is not an error; the form may already be showing.
var proceedLocators = []Locator{
	{Desc: "proceed to application button", Query: `//button[contains(text(), 'Proceed to Application')]`, XPath: true},
	{Desc: "proceed to application button (lowercase)", Query: `//button[contains(text(), 'Proceed to application')]`, XPath: true},
	{Desc: "proceed to application link", Query: `//a[contains(text(), 'Proceed to Application')]`, XPath: true},
	{Desc: "proceed link", Query: `//a[contains(text(), 'Proceed')]`, XPath: true},
	{Desc: "proceed-classed button", Query: `//button[contains(@class, 'proceed')]`, XPath: true},
	{Desc: "primary proceed button", Query: `//button[contains(@class, 'btn-primary')][contains(text(), 'Proceed')]`, XPath: true},
}

// submitLocators find the form submit control, in priority order.
var submitLocators = []Locator{
	{Desc: "submit-typed submit button", Query: `//button[@type='submit'][contains(text(), 'Submit')]`, XPath: true},
	{Desc: "submit button", Query: `//button[contains(text(), 'Submit')]`, XPath: true},
	{Desc: "submit input", Query: `//input[@type='submit']`, XPath: true},
	{Desc: "submit-classed button", Query: `//button[contains(@class, 'submit')]`, XPath: true},
	{Desc: "primary submit button", Query: `//button[contains(@class, 'btn-primary')][contains(text(), 'Submit')]`, XPath: true},
}

// formSurfaceScript reports whether any signal of an application surface is
// present: a form/container element, an Application heading, cover-letter
// text, a free-text area, or a submit control.
const formSurfaceScript = `(() => {
	if (document.querySelector("form[class*='application_form'], div[class*='application_form'], textarea")) return true;
	const found = q => document.evaluate(q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue !== null;
	return found("//h4[contains(text(), 'Application')]")
		|| found("//div[contains(text(), 'Cover letter')]")
		|| found("//button[contains(text(), 'Submit')]");
})()`

// successSignalScript reports whether any post-submit success signal is
// present: a confirmation text, a success-styled element, or a known URL
// substring.
const successSignalScript = `(() => {
	const found = q => document.evaluate(q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue !== null;
	if (found("//div[contains(text(), 'Application submitted')]")
		|| found("//div[contains(text(), 'Successfully')]")
		|| found("//div[contains(text(), 'successfully')]")) return true;
	if (document.querySelector("div[class*='success']")) return true;
	return location.href.includes('application-successful') || location.href.includes('applied');
})()`

// collectFieldsScript gathers candidate free-text fields, preferring
// answer/cover-letter semantic textareas and falling back to every textarea.
// Each candidate is tagged with a stable index attribute so later typing can
// address it by selector.
const collectFieldsScript = `(() => {
	const specific = [...document.querySelectorAll(
		"textarea[class*='answer_field'], textarea[name='answer'], textarea[id*='answer']," +
		"textarea[class*='cover_letter'], textarea[placeholder*='cover letter'], textarea[id*='cover-letter']")];
	const fields = specific.length ? [...new Set(specific)] : [...document.querySelectorAll('textarea')];
	return fields.map((el, i) => {
		el.setAttribute('data-ia-field', String(i));
		const before = q => {
			const r = document.evaluate(q, el, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null);
			return r.singleNodeValue ? r.singleNodeValue.innerText.trim() : '';
		};
		return {
			index: i,
			value: el.value.trim(),
			readOnly: el.readOnly || el.disabled,
			labelBefore: before("./preceding::label[1]"),
			questionBefore: before("./preceding::div[contains(@class, 'question')][1]"),
			placeholder: (el.getAttribute('placeholder') || '').trim(),
		};
	});
})()`

// collectCheckboxesScript tags every checkbox with a stable index attribute
// and returns its required/checked state plus associated label text.
const collectCheckboxesScript = `(() => {
	return [...document.querySelectorAll("input[type='checkbox']")].map((el, i) => {
		el.setAttribute('data-ia-box', String(i));
		const r = document.evaluate("./following::label[1]", el, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null);
		return {
			index: i,
			required: el.required || (el.className || '').includes('required'),
			checked: el.checked,
			label: r.singleNodeValue ? r.singleNodeValue.innerText.trim() : '',
		};
	});
})()`

// checkBoxScript scrolls a tagged checkbox into view and checks it through
// direct DOM dispatch.
const checkBoxScript = `(() => {
	const el = document.querySelector('input[data-ia-box="%d"]');
	if (!el) return false;
	el.scrollIntoView({block: 'center'});
	el.click();
	return true;
})()`

// formField is one candidate free-text field on the application form.
type formField struct {
	Index          int    `json:"index"`
	Value          string `json:"value"`
	ReadOnly       bool   `json:"readOnly"`
	LabelBefore    string `json:"labelBefore"`
	QuestionBefore string `json:"questionBefore"`
	Placeholder    string `json:"placeholder"`
}

// checkboxState is one checkbox on the application form.
type checkboxState struct {
	Index    int    `json:"index"`
	Required bool   `json:"required"`
	Checked  bool   `json:"checked"`
	Label    string `json:"label"`
}

// detectAlreadyApplied reports whether any collected div text carries an
// already-applied phrasing: "already applied" in any casing, or the
// capitalized status word "Applied". A lowercase bare "applied", as in an
// applicant count, does not match.
func detectAlreadyApplied(divTexts []string) bool {
	for _, txt := range divTexts {
		if strings.Contains(strings.ToLower(txt), "already applied") || strings.Contains(txt, "Applied") {
			return true
		}
	}
	return false
}

// fieldLabel derives a field's label in priority order: a preceding label
// element, a preceding question container, then the placeholder attribute.
// Returns "general" when none is available.
func fieldLabel(f formField) string {
	for _, candidate := range []string{f.LabelBefore, f.QuestionBefore, f.Placeholder} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "general"
}

// shouldCheckOptional decides whether a non-required, unchecked checkbox
// gets checked: only update/notification semantics, and never anything that
// reads like legal terms or an agreement.
func shouldCheckOptional(label string) bool {
	l := strings.ToLower(label)
	if l == "" {
		return false
	}
	if containsAny(l, []string{"term", "condition", "agree"}) {
		return false
	}
	return containsAny(l, []string{"notification", "update", "inform"})
}

// applyToListing runs the per-listing application state machine. Terminal
// states are submitted, already applied, and failed; a failure never aborts
// the run.
func (b *Bot) applyToListing(ctx context.Context, l Listing) ApplicationOutcome {
	b.events.Infof("Attempting to apply for %s at %s", l.Title, l.Company)

	if err := chromedp.Run(ctx, chromedp.Navigate(l.URL)); err != nil {
		return ApplicationOutcome{Listing: l, Kind: OutcomeFailed, Reason: fmt.Sprintf("could not open listing: %v", err)}
	}
	b.pacer.Delay(ctx, 2*time.Second, 5*time.Second)

	var divTexts []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(alreadyAppliedScript, &divTexts)); err == nil {
		if detectAlreadyApplied(divTexts) {
			b.events.Infof("Already applied to %s, skipping", l.Title)
			return ApplicationOutcome{Listing: l, Kind: OutcomeAlreadyApplied}
		}
	}

	applyControl, found, err := firstMatch(ctx, applyLocators, probeTimeout)
	if err != nil {
		return ApplicationOutcome{Listing: l, Kind: OutcomeFailed, Reason: fmt.Sprintf("probing apply control: %v", err)}
	}
	if !found {
		b.events.Warnf("Apply button not found for %s, skipping", l.Title)
		return ApplicationOutcome{Listing: l, Kind: OutcomeFailed, Reason: "apply control not found"}
	}

	b.pacer.Delay(ctx, 1*time.Second, 2*time.Second)
	b.events.Infof("Clicking apply button for %s", l.Title)
	if clicked, err := clickLocator(ctx, applyControl); err != nil || !clicked {
		return ApplicationOutcome{Listing: l, Kind: OutcomeFailed, Reason: "apply control could not be activated"}
	}

	if err := b.completeApplicationForm(ctx); err != nil {
		b.events.Warnf("Could not complete application for %s: %v", l.Title, err)
		return ApplicationOutcome{Listing: l, Kind: OutcomeFailed, Reason: err.Error()}
	}

	b.pacer.Delay(ctx, 3*time.Second, 6*time.Second)
	return ApplicationOutcome{Listing: l, Kind: OutcomeSubmitted}
}

// completeApplicationForm handles the intermediate proceed step, fills
// unanswered free-text fields, manages checkboxes, submits, and waits for a
// success signal.
func (b *Bot) completeApplicationForm(ctx context.Context) error {
	if proceed, found, err := firstMatch(ctx, proceedLocators, probeTimeout); err == nil && found {
		b.events.Infof("Found 'Proceed to Application' button, clicking it")
		if _, err := clickLocator(ctx, proceed); err != nil {
			return &ApplyError{Reason: "proceed control could not be activated", Cause: err}
		}
		b.pacer.Delay(ctx, 2*time.Second, 3*time.Second)
	} else {
		b.events.Infof("No 'Proceed to Application' button found, might be already on application form")
	}

	present, err := waitFor(ctx, formWait, formSurfaceScript)
	if err != nil {
		return &ApplyError{Reason: "waiting for application form", Cause: err}
	}
	if !present {
		return &ApplyError{Reason: "application form not found"}
	}
	b.events.Infof("Application form found")

	b.fillFreeTextFields(ctx)
	b.handleCheckboxes(ctx)

	submit, found, err := firstMatch(ctx, submitLocators, submitProbeTimeout)
	if err != nil {
		return &ApplyError{Reason: "probing submit control", Cause: err}
	}
	if !found {
		return &ApplyError{Reason: "submit button not found"}
	}

	b.pacer.Delay(ctx, 1*time.Second, 3*time.Second)
	b.events.Infof("Found submit button, clicking now")
	if clicked, err := clickLocator(ctx, submit); err != nil || !clicked {
		return &ApplyError{Reason: "submit control could not be activated"}
	}

	confirmed, err := waitFor(ctx, confirmWait, successSignalScript)
	if err == nil && confirmed {
		b.events.Infof("Received confirmation of successful application")
		return nil
	}

	// The site frequently gives no explicit confirmation; an unconfirmed
	// submission still counts as submitted.
	if strings.Contains(currentLocation(ctx), "/internship/") {
		b.events.Infof("Redirected to internship page after submission, likely successful")
		return nil
	}
	b.events.Warnf("No confirmation received but form was submitted")
	return nil
}

// fillFreeTextFields fills every unanswered candidate field with a templated
// response keyed by its derived label. A field that cannot be filled is
// logged and skipped.
func (b *Bot) fillFreeTextFields(ctx context.Context) {
	var fields []formField
	if err := chromedp.Run(ctx, chromedp.Evaluate(collectFieldsScript, &fields)); err != nil {
		b.events.Warnf("Could not enumerate application fields: %v", err)
		return
	}

	for _, f := range fields {
		if f.Value != "" {
			continue
		}
		if f.ReadOnly {
			b.events.Warnf("Could not fill field %d: read-only", f.Index)
			continue
		}

		response := GenerateResponse(fieldLabel(f))
		b.pacer.Delay(ctx, 1*time.Second, 2*time.Second)

		sel := fmt.Sprintf(`textarea[data-ia-field="%d"]`, f.Index)
		if err := b.pacer.TypeHuman(ctx, sel, response); err != nil {
			b.events.Warnf("Could not fill field %d: %v", f.Index, err)
			continue
		}
		b.events.Infof("Filled in application field with response")
	}
}

// handleCheckboxes checks every unchecked required checkbox, and opts into
// update/notification checkboxes while never auto-accepting legal terms.
// Per-checkbox failures are swallowed and logged.
func (b *Bot) handleCheckboxes(ctx context.Context) {
	var boxes []checkboxState
	if err := chromedp.Run(ctx, chromedp.Evaluate(collectCheckboxesScript, &boxes)); err != nil {
		b.events.Warnf("Could not enumerate checkboxes: %v", err)
		return
	}

	for _, box := range boxes {
		if box.Checked {
			continue
		}
		switch {
		case box.Required:
			b.pacer.Delay(ctx, 500*time.Millisecond, time.Second)
			if ok, err := evalBool(ctx, fmt.Sprintf(checkBoxScript, box.Index)); err != nil || !ok {
				b.events.Warnf("Could not check required checkbox %d", box.Index)
				continue
			}
			b.events.Infof("Checked required checkbox")
		case shouldCheckOptional(box.Label):
			b.pacer.Delay(ctx, 500*time.Millisecond, time.Second)
			if ok, err := evalBool(ctx, fmt.Sprintf(checkBoxScript, box.Index)); err != nil || !ok {
				b.events.Warnf("Could not check optional checkbox %d", box.Index)
				continue
			}
			b.events.Infof("Checked optional checkbox: %s", box.Label)
		}
	}
}
