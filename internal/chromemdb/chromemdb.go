package chromemdb

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
)

// Match is one nearest-neighbor result. Distance is cosine distance
// (1 - similarity), so 0 means identical and values live in [0, 2].
type Match struct {
	Text     string
	Distance float64
	Metadata map[string]string
}

// Manager encapsulates the chromem-go database operations. Collections are
// built once at startup and only read afterwards; chromem-go supports
// concurrent reads.
type Manager struct {
	db *chromem.DB
}

const compress = false

// NewManager initializes a new vector database manager
func NewManager(dbPath string, inMemory bool) (*Manager, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}
	return &Manager{db: db}, nil
}

// Recreate drops any persisted collection of that name and creates a fresh
// one. Used by the corpus loader so collections and embedding model stay
// version-consistent.
func (m *Manager) Recreate(name string) (*Collection, error) {
	if err := m.db.DeleteCollection(name); err != nil {
		return nil, fmt.Errorf("failed to drop collection %s: %v", name, err)
	}
	c, err := m.db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %v", name, err)
	}
	return &Collection{name: name, c: c}, nil
}

// Collection wraps one chromem collection.
type Collection struct {
	name string
	c    *chromem.Collection
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Count() int { return c.c.Count() }

// AddDocuments stores pre-embedded documents in the collection.
func (c *Collection) AddDocuments(ctx context.Context, docs []chromem.Document) error {
	if err := c.c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Nearest returns the single nearest neighbor for the query embedding.
func (c *Collection) Nearest(ctx context.Context, queryEmbedding []float32) (Match, error) {
	if len(queryEmbedding) == 0 {
		return Match{}, fmt.Errorf("embedding must be provided")
	}
	results, err := c.c.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       1,
	})
	if err != nil {
		return Match{}, fmt.Errorf("failed to query by similarity: %v", err)
	}
	if len(results) == 0 {
		return Match{}, fmt.Errorf("collection %s returned no results", c.name)
	}
	r := results[0]
	d := 1 - float64(r.Similarity)
	// float32 rounding can leave an epsilon on identical vectors
	if d < 1e-6 {
		d = 0
	}
	return Match{Text: r.Content, Distance: d, Metadata: r.Metadata}, nil
}
