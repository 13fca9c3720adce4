// Package classify assigns category labels to document segments by
// nearest-neighbor distance against the two reference collections.
package classify

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/fewie27/ultimate/internal/chromemdb"
	"github.com/fewie27/ultimate/internal/models"
)

// Policy holds the tunable classification knobs: the minimum segment length
// worth classifying, one distance threshold per axis and the label pair each
// axis produces. Distances are cosine distances in [0, 2], lower is more
// similar.
type Policy struct {
	MinLength int

	// Axis 1, novelty: distance to sample_agreement above the threshold
	// labels the segment UnusualLabel, otherwise MatchLabel.
	SampleThreshold float64
	UnusualLabel    string
	MatchLabel      string

	// Axis 2, completeness: distance to minimal_requirements at or below
	// the threshold labels the segment InvalidLabel, otherwise ValidLabel.
	MinimalThreshold float64
	InvalidLabel     string
	ValidLabel       string
}

func DefaultPolicy() Policy {
	return Policy{
		MinLength:        40,
		SampleThreshold:  0.3,
		UnusualLabel:     models.CategoryUnusual,
		MatchLabel:       models.CategoryMatchFound,
		MinimalThreshold: 0.3,
		InvalidLabel:     models.CategoryInvalid,
		ValidLabel:       models.CategoryValid,
	}
}

// Classifier compares segments against the two immutable reference
// collections. Safe for concurrent use; it only reads shared state.
type Classifier struct {
	embedder embeddings.Embedder
	minimal  *chromemdb.Collection
	sample   *chromemdb.Collection
	policy   Policy
	workers  int
}

func New(embedder embeddings.Embedder, minimal, sample *chromemdb.Collection, policy Policy, workers int) *Classifier {
	if workers < 1 {
		workers = 1
	}
	return &Classifier{
		embedder: embedder,
		minimal:  minimal,
		sample:   sample,
		policy:   policy,
		workers:  workers,
	}
}

// Classify processes all segments and returns one result per surviving
// segment in original reading order. Segments run on a bounded worker pool;
// each writes only to its own output slot, so ordering is preserved. A
// failing segment is logged and skipped, it never aborts the batch. When
// nothing at all is classifiable a single sentinel entry is returned.
func (c *Classifier) Classify(ctx context.Context, segments []string) []models.AnalysisItem {
	slots := make([]*models.AnalysisItem, len(segments))

	var wg sync.WaitGroup
	sem := make(chan struct{}, c.workers)
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, seg string) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i] = c.classifySegment(ctx, seg)
		}(i, seg)
	}
	wg.Wait()

	results := make([]models.AnalysisItem, 0, len(segments))
	for _, item := range slots {
		if item != nil {
			results = append(results, *item)
		}
	}
	if len(results) == 0 {
		return []models.AnalysisItem{{
			Text:        models.NoSentencesText,
			Category:    []string{models.CategoryMissing},
			Description: models.NoSentencesDescription,
		}}
	}
	return results
}

func (c *Classifier) classifySegment(ctx context.Context, segment string) *models.AnalysisItem {
	// short segments pass through unclassified, keeping positional
	// completeness in the output
	if utf8.RuneCountInString(segment) < c.policy.MinLength {
		return &models.AnalysisItem{Text: segment, Category: []string{}}
	}

	emb, err := c.embedder.EmbedQuery(ctx, segment)
	if err != nil {
		log.Error().Err(err).Str("segment", segment).Msg("Error embedding segment")
		return nil
	}

	sampleMatch, err := c.sample.Nearest(ctx, emb)
	if err != nil {
		log.Error().Err(err).Str("segment", segment).Msg("Error querying sample agreement")
		return nil
	}
	minimalMatch, err := c.minimal.Nearest(ctx, emb)
	if err != nil {
		log.Error().Err(err).Str("segment", segment).Msg("Error querying minimal requirements")
		return nil
	}

	novelty := c.policy.MatchLabel
	if sampleMatch.Distance > c.policy.SampleThreshold {
		novelty = c.policy.UnusualLabel
	}
	completeness := c.policy.ValidLabel
	if minimalMatch.Distance <= c.policy.MinimalThreshold {
		completeness = c.policy.InvalidLabel
	}

	return &models.AnalysisItem{
		Text:            segment,
		Category:        []string{novelty, completeness},
		SampleDistance:  &sampleMatch.Distance,
		SampleMatch:     sampleMatch.Text,
		MinimalDistance: &minimalMatch.Distance,
		MinimalMatch:    minimalMatch.Text,
	}
}
