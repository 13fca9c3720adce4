// Package corpus builds the two reference collections the classifier
// compares against: the minimal requirements a valid rental agreement must
// contain and the clauses of a typical sample agreement.
package corpus

import (
	"context"
	"fmt"
	"os"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/fewie27/ultimate/internal/chromemdb"
	"github.com/fewie27/ultimate/internal/helper"
	"github.com/fewie27/ultimate/internal/parser"
)

const (
	MinimalRequirementsName = "minimal_requirements"
	SampleAgreementName     = "sample_agreement"
)

// Sources describes where a collection's clauses come from: a literal list,
// document paths run through extraction and segmentation, or both. Fallback
// takes over when everything else yields zero clauses, so a collection is
// never empty (nearest-neighbor distance would be undefined).
type Sources struct {
	Texts    []string
	Paths    []string
	Fallback []string
}

// Loader rebuilds reference collections from scratch. Collections are
// deleted and recreated wholesale on every process start, which keeps the
// corpora version-consistent with the embedding model.
type Loader struct {
	manager   *chromemdb.Manager
	embedder  embeddings.Embedder
	extractor *parser.Extractor
	splitter  *parser.Splitter
}

func NewLoader(manager *chromemdb.Manager, embedder embeddings.Embedder, extractor *parser.Extractor, splitter *parser.Splitter) *Loader {
	return &Loader{manager: manager, embedder: embedder, extractor: extractor, splitter: splitter}
}

// Build creates the named collection from the given sources.
func (l *Loader) Build(ctx context.Context, name string, sources Sources) (*chromemdb.Collection, error) {
	clauses := append([]string(nil), sources.Texts...)
	for _, path := range sources.Paths {
		segments, err := l.clausesFromDocument(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping reference document")
			continue
		}
		clauses = append(clauses, segments...)
	}
	if len(clauses) == 0 {
		log.Info().Str("collection", name).Msg("No reference clauses extracted, using fallback list")
		clauses = sources.Fallback
	}
	if len(clauses) == 0 {
		return nil, fmt.Errorf("collection %s has no sources and no fallback", name)
	}

	collection, err := l.manager.Recreate(name)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, 0, len(clauses))
	for _, clause := range clauses {
		emb, err := l.embedder.EmbedQuery(ctx, clause)
		if err != nil {
			return nil, fmt.Errorf("failed to embed reference clause: %w", err)
		}
		docs = append(docs, chromem.Document{
			ID:        helper.GenerateUUID(),
			Content:   clause,
			Metadata:  map[string]string{"info": "Beispiel"},
			Embedding: emb,
		})
	}
	if err := collection.AddDocuments(ctx, docs); err != nil {
		return nil, err
	}
	log.Info().Str("collection", name).Int("clauses", len(docs)).Msg("Built reference collection")
	return collection, nil
}

// BuildDefaults builds both system collections, reading optional reference
// documents and falling back to the built-in clause lists.
func (l *Loader) BuildDefaults(ctx context.Context, minimalDocs, sampleDocs []string) (minimal, sample *chromemdb.Collection, err error) {
	minimal, err = l.Build(ctx, MinimalRequirementsName, Sources{
		Paths:    minimalDocs,
		Fallback: MinimalRequirements(),
	})
	if err != nil {
		return nil, nil, err
	}
	sample, err = l.Build(ctx, SampleAgreementName, Sources{
		Paths:    sampleDocs,
		Fallback: SampleAgreement(),
	})
	if err != nil {
		return nil, nil, err
	}
	return minimal, sample, nil
}

func (l *Loader) clausesFromDocument(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := l.extractor.Extract(ctx, data, path)
	if err != nil {
		return nil, err
	}
	return l.splitter.Split(text), nil
}
