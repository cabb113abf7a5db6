package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAlreadyApplied(t *testing.T) {
	assert.True(t, detectAlreadyApplied([]string{"You have already applied to this internship"}))
	assert.True(t, detectAlreadyApplied([]string{"ALREADY APPLIED"}))
	assert.True(t, detectAlreadyApplied([]string{"Applied on 12 Jan"}))

	// A lowercase bare "applied", as in applicant counts, is not a status.
	assert.False(t, detectAlreadyApplied([]string{"1,200 students applied"}))
	assert.False(t, detectAlreadyApplied([]string{"Apply now to this internship"}))
	assert.False(t, detectAlreadyApplied(nil))
}

func TestFieldLabelPrecedence(t *testing.T) {
	f := formField{
		LabelBefore:    "Why do you want this role?",
		QuestionBefore: "Question 1",
		Placeholder:    "Type here",
	}
	assert.Equal(t, "Why do you want this role?", fieldLabel(f))

	f.LabelBefore = ""
	assert.Equal(t, "Question 1", fieldLabel(f))

	f.QuestionBefore = "  "
	assert.Equal(t, "Type here", fieldLabel(f))

	f.Placeholder = ""
	assert.Equal(t, "general", fieldLabel(f))
}

func TestShouldCheckOptional(t *testing.T) {
	assert.True(t, shouldCheckOptional("Keep me updated about new internships"))
	assert.True(t, shouldCheckOptional("Send me notifications"))
	assert.True(t, shouldCheckOptional("Inform me about similar roles"))

	// Legal terms are never auto-accepted, even with update semantics.
	assert.False(t, shouldCheckOptional("I agree to receive updates"))
	assert.False(t, shouldCheckOptional("I accept the terms and conditions"))

	assert.False(t, shouldCheckOptional(""))
	assert.False(t, shouldCheckOptional("Subscribe to the newsletter"))
}

func TestApplyLocatorPriority(t *testing.T) {
	// Text-based strategies come before class-based ones, and buttons
	// before links; the documented order is the probing order.
	assert.Contains(t, applyLocators[0].Query, "Apply now")
	assert.Contains(t, applyLocators[0].Query, "button")
	assert.Contains(t, applyLocators[1].Query, "//a")

	for _, loc := range applyLocators {
		assert.True(t, loc.XPath)
		assert.NotEmpty(t, loc.Desc)
	}
}

func TestSubmitLocatorPriority(t *testing.T) {
	assert.Contains(t, submitLocators[0].Query, "@type='submit'")
	for _, loc := range submitLocators {
		assert.True(t, strings.Contains(strings.ToLower(loc.Query), "submit"))
	}
}

func TestProceedLocatorsCoverCaseVariants(t *testing.T) {
	assert.Contains(t, proceedLocators[0].Query, "Proceed to Application")
	assert.Contains(t, proceedLocators[1].Query, "Proceed to application")
}
