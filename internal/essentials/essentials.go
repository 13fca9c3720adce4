// Package essentials extracts the four structured facts of a rental
// agreement (parties, object, rent, start date) through one
// language-understanding call.
package essentials

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"

	"github.com/fewie27/ultimate/internal/llmservice"
	"github.com/fewie27/ultimate/internal/models"
)

// Extractor sends the full document text to the language model with a fixed
// instruction template and parses the four-field JSON result.
type Extractor struct {
	model   llms.Model
	timeout time.Duration
}

func NewExtractor(model llms.Model, timeout time.Duration) *Extractor {
	return &Extractor{model: model, timeout: timeout}
}

// Extract never fails: service errors and unparsable responses are converted
// into an error record so the caller always gets a record shape back.
func (e *Extractor) Extract(ctx context.Context, fullText string) *models.Essentials {
	raw, err := llmservice.Complete(ctx, e.model, e.timeout, models.EssentialsSystemPrompt, fullText)
	if err != nil {
		log.Error().Err(err).Msg("Error extracting essentials")
		return &models.Essentials{Error: err.Error()}
	}

	cleaned := stripCodeFence(raw)
	var record models.Essentials
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		log.Error().Err(err).Msg("Error parsing essentials response")
		return &models.Essentials{Error: "unparsable response", Raw: raw}
	}
	return &record
}

// stripCodeFence removes a surrounding fenced code block, which some models
// add around the requested JSON object.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line ("json" etc.)
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
