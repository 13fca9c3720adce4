// Package analyze composes extraction, segmentation, classification and
// essentials extraction into the single analysis operation exposed to the
// API layer.
package analyze

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/fewie27/ultimate/internal/classify"
	"github.com/fewie27/ultimate/internal/essentials"
	"github.com/fewie27/ultimate/internal/helper"
	"github.com/fewie27/ultimate/internal/models"
	"github.com/fewie27/ultimate/internal/parser"
)

// Analyzer is constructed once at startup with its dependencies injected and
// reused across requests. It holds no mutable state of its own.
type Analyzer struct {
	extractor  *parser.Extractor
	splitter   *parser.Splitter
	classifier *classify.Classifier
	essentials *essentials.Extractor
}

func New(extractor *parser.Extractor, splitter *parser.Splitter, classifier *classify.Classifier, ess *essentials.Extractor) *Analyzer {
	return &Analyzer{
		extractor:  extractor,
		splitter:   splitter,
		classifier: classifier,
		essentials: ess,
	}
}

// Analyze runs the full pipeline on one document. The caller always receives
// a well-formed result: extraction failure yields a sentinel entry and no
// essentials record, partial classification failures degrade content but
// never the response shape.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, nameHint string) *models.AnalysisResult {
	result := &models.AnalysisResult{ID: helper.GenerateUUID()}

	text, err := a.extractor.Extract(ctx, data, nameHint)
	if err != nil {
		log.Error().Err(err).Str("file", nameHint).Msg("Error extracting document")
		result.Results = []models.AnalysisItem{{
			Text:        models.UnreadableText,
			Category:    []string{models.CategoryMissing},
			Description: err.Error(),
		}}
		return result
	}

	segments := a.splitter.Split(text)

	// classification and essentials extraction are independent stages
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Results = a.classifier.Classify(ctx, segments)
	}()
	go func() {
		defer wg.Done()
		result.Essentials = a.essentials.Extract(ctx, text)
	}()
	wg.Wait()

	log.Info().Str("id", result.ID).Int("segments", len(segments)).Msg("Analyzed document")
	return result
}
