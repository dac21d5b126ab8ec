package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/prompt"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

type fakeCompleter struct {
	responses map[string]string
	errs      map[string]error
}

func (f *fakeCompleter) Complete(_ context.Context, p prompt.Rendered) (string, error) {
	if err := f.errs[p.Kind]; err != nil {
		return "", err
	}
	return f.responses[p.Kind], nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(context.Context, []byte, string) (string, error) {
	return f.text, f.err
}

func newTestPipeline(completer *fakeCompleter, extractor *fakeExtractor) *Pipeline {
	profile := domain.LoadCategoryProfile("default")
	return NewPipeline(prompt.NewCatalog(profile), completer, extractor, profile)
}

func TestEnrichTrimsAndCanonicalizesResults(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"category": "  cloud services \n",
		"urgency":  " HIGH ",
		"response": "  Please restart the app.  ",
	}}
	pipeline := newTestPipeline(completer, &fakeExtractor{})

	result, err := pipeline.Enrich(context.Background(), "app keeps crashing", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Category("Cloud Services"), result.Category)
	assert.Equal(t, domain.TicketUrgencyHigh, result.Urgency)
	assert.Equal(t, "Please restart the app.", result.Response)
	assert.Equal(t, "app keeps crashing", result.Description)
}

func TestEnrichRejectsCategoryOutsideEnumeration(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"category": "Billing",
		"urgency":  "Low",
		"response": "ok",
	}}
	pipeline := newTestPipeline(completer, &fakeExtractor{})

	_, err := pipeline.Enrich(context.Background(), "invoice question", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestEnrichRejectsUrgencyOutsideEnumeration(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"category": "General",
		"urgency":  "very urgent",
		"response": "ok",
	}}
	pipeline := newTestPipeline(completer, &fakeExtractor{})

	_, err := pipeline.Enrich(context.Background(), "help", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestEnrichPropagatesCompletionFailure(t *testing.T) {
	completer := &fakeCompleter{
		responses: map[string]string{"category": "General", "urgency": "Low"},
		errs:      map[string]error{"response": apperrors.NewUpstreamFailure("completion", errors.New("boom"))},
	}
	pipeline := newTestPipeline(completer, &fakeExtractor{})

	_, err := pipeline.Enrich(context.Background(), "help", nil)
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILURE", apperrors.ToDomainError(err).Code)
}

func TestEnrichConcatenatesExtractedImageText(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"category": "General",
		"urgency":  "Low",
		"response": "ok",
	}}
	extractor := &fakeExtractor{text: "Error 0x80070005: access denied"}
	pipeline := newTestPipeline(completer, extractor)

	result, err := pipeline.Enrich(context.Background(), "screenshot attached", &Image{Data: []byte{1}, MimeType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Description, "screenshot attached\n\n"))
	assert.Contains(t, result.Description, "[Extracted from attached image]")
	assert.Contains(t, result.Description, "Error 0x80070005")
}

func TestEnrichSurfacesExtractionFailure(t *testing.T) {
	completer := &fakeCompleter{responses: map[string]string{
		"category": "General",
		"urgency":  "Low",
		"response": "ok",
	}}
	extractor := &fakeExtractor{err: apperrors.NewUpstreamFailure("extraction", errors.New("bad image"))}
	pipeline := newTestPipeline(completer, extractor)

	_, err := pipeline.Enrich(context.Background(), "screenshot attached", &Image{Data: []byte{1}, MimeType: "image/png"})
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILURE", apperrors.ToDomainError(err).Code)
}
