package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motivity-labs/support-triage/internal/domain"
)

func TestCategoryPromptEnumeratesActiveProfile(t *testing.T) {
	catalog := NewCatalog(domain.LoadCategoryProfile("fine"))
	rendered := catalog.Category("my login fails")

	assert.Equal(t, "category", rendered.Kind)
	assert.Contains(t, rendered.System, "Access")
	assert.Contains(t, rendered.System, "QA")
	assert.Contains(t, rendered.System, `Default to "General"`)
	assert.Equal(t, "Ticket: my login fails", rendered.User)
}

func TestTemplatesCarrySingleInputVariable(t *testing.T) {
	catalog := NewCatalog(domain.LoadCategoryProfile("default"))

	assert.Equal(t, "Ticket: x", catalog.Urgency("x").User)
	assert.Equal(t, "Ticket: x", catalog.Response("x").User)
	assert.Equal(t, "Question: x", catalog.Chat("x").User)
}

func TestImageExtractionDemandsVerbatimText(t *testing.T) {
	rendered := ImageExtraction()
	assert.Equal(t, "image_extraction", rendered.Kind)
	assert.Contains(t, rendered.System, "verbatim")
}
