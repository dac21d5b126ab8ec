package enrich

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/llm"
	"github.com/motivity-labs/support-triage/internal/prompt"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// Image is an optional attachment converted to text before classification.
type Image struct {
	Data     []byte
	MimeType string
}

// Enrichment is the result of the three completions over one description.
type Enrichment struct {
	// Description is the input, extended with extracted image text when an
	// image was attached.
	Description string
	Category    domain.Category
	Urgency     domain.TicketUrgency
	Response    string
}

// imageTextLabel separates the original description from extracted image text.
const imageTextLabel = "[Extracted from attached image]"

// Pipeline runs category, urgency and response completions over a shared
// description. The three calls are independent, so they run concurrently;
// any failure fails the whole enrichment and nothing is stored.
type Pipeline struct {
	catalog   *prompt.Catalog
	completer llm.Completer
	extractor llm.ImageTextExtractor
	profile   domain.CategoryProfile
}

// NewPipeline constructs the pipeline.
func NewPipeline(catalog *prompt.Catalog, completer llm.Completer, extractor llm.ImageTextExtractor, profile domain.CategoryProfile) *Pipeline {
	return &Pipeline{
		catalog:   catalog,
		completer: completer,
		extractor: extractor,
		profile:   profile,
	}
}

// Enrich classifies the description and drafts a first response.
func (p *Pipeline) Enrich(ctx context.Context, description string, image *Image) (*Enrichment, error) {
	if image != nil {
		extracted, err := p.extractor.ExtractText(ctx, image.Data, image.MimeType)
		if err != nil {
			return nil, err
		}
		if text := strings.TrimSpace(extracted); text != "" {
			description = description + "\n\n" + imageTextLabel + "\n" + text
		}
	}

	result := &Enrichment{Description: description}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := p.completer.Complete(gctx, p.catalog.Category(description))
		if err != nil {
			return err
		}
		category, ok := p.profile.Canonical(raw)
		if !ok {
			return apperrors.NewValidationError("classifier returned a category outside the enumeration",
				map[string]any{"category": strings.TrimSpace(raw)})
		}
		result.Category = category
		return nil
	})
	g.Go(func() error {
		raw, err := p.completer.Complete(gctx, p.catalog.Urgency(description))
		if err != nil {
			return err
		}
		urgency, ok := domain.ParseUrgency(raw)
		if !ok {
			return apperrors.NewValidationError("classifier returned an urgency outside the enumeration",
				map[string]any{"urgency": strings.TrimSpace(raw)})
		}
		result.Urgency = urgency
		return nil
	})
	g.Go(func() error {
		raw, err := p.completer.Complete(gctx, p.catalog.Response(description))
		if err != nil {
			return err
		}
		result.Response = strings.TrimSpace(raw)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
