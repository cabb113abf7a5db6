package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPreferencesFallsBackToDefaults(t *testing.T) {
	b := New(Options{Email: "a@b.c", Password: "x"})

	// A context without a browser behind it makes navigation fail, which
	// takes the wholesale-replacement path.
	criteria, ok := b.extractPreferences(context.Background())

	assert.False(t, ok)
	assert.Equal(t, DefaultCriteria(), criteria)
}

func TestLoginNavigationFailureIsFatal(t *testing.T) {
	b := New(Options{Email: "a@b.c", Password: "x"})

	err := b.login(context.Background())

	var loginErr *LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "could not open login page", loginErr.Reason)
}
