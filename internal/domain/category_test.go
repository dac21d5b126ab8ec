package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCategoryProfileBuiltins(t *testing.T) {
	def := LoadCategoryProfile("default")
	assert.Equal(t, "default", def.Name)
	assert.Len(t, def.Categories, 5)

	fine := LoadCategoryProfile("fine")
	assert.Equal(t, "fine", fine.Name)
	assert.Len(t, fine.Categories, 9)

	assert.Equal(t, def, LoadCategoryProfile(""))
	assert.Equal(t, fine, LoadCategoryProfile(" FINE "))
}

func TestLoadCategoryProfileCustomList(t *testing.T) {
	custom := LoadCategoryProfile("Billing, Login , Technical")
	assert.Equal(t, "custom", custom.Name)
	assert.Equal(t, []Category{"Billing", "Login", "Technical"}, custom.Values())

	// a blank custom spec falls back to the default profile
	assert.Equal(t, LoadCategoryProfile("default"), LoadCategoryProfile(" , ,"))
}

func TestCanonicalMatchesCaseInsensitively(t *testing.T) {
	profile := LoadCategoryProfile("default")

	category, ok := profile.Canonical("  cloud SERVICES ")
	require.True(t, ok)
	assert.Equal(t, Category("Cloud Services"), category)

	_, ok = profile.Canonical("Billing")
	assert.False(t, ok)
}

func TestFallbackPrefersGeneral(t *testing.T) {
	assert.Equal(t, Category("General"), LoadCategoryProfile("default").Fallback())
	assert.Equal(t, Category("General"), LoadCategoryProfile("fine").Fallback())
	assert.Equal(t, Category("Technical"), LoadCategoryProfile("Billing,Technical").Fallback())
}

func TestParseStatusAndUrgency(t *testing.T) {
	status, ok := ParseStatus("resolved")
	require.True(t, ok)
	assert.Equal(t, TicketStatusResolved, status)

	_, ok = ParseStatus("closed")
	assert.False(t, ok)

	urgency, ok := ParseUrgency(" CRITICAL ")
	require.True(t, ok)
	assert.Equal(t, TicketUrgencyCritical, urgency)

	_, ok = ParseUrgency("urgent-ish")
	assert.False(t, ok)
}
