package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/motivity-labs/support-triage/internal/prompt"
)

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// ExtractText sends the image to the vision model with an instruction to
// return verbatim extracted text only.
func (c *Client) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	rendered := prompt.ImageExtraction()

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	req := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{Role: "system", Content: rendered.System},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: rendered.User},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			}},
		},
	}
	return c.send(ctx, rendered.Kind, req)
}
