package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/fewie27/ultimate/internal/models"
)

// ErrNotFound is returned when no analysis exists for the requested id.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one persisted analysis result. Payload holds the serialized
// AnalysisResult; the record is written once and never updated.
type Analysis struct {
	bun.BaseModel `bun:"table:analyses,alias:a"`
	ID            string    `bun:"id,pk"`
	Filename      string    `bun:"filename,notnull"`
	Payload       []byte    `bun:"payload,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// ConnectDB opens the sqlite database, creating the parent directory of a
// file-backed DSN first. sqlite cannot create a database file in a missing
// directory.
func ConnectDB(dsn string) (*sql.DB, error) {
	if dir := dsnDir(dsn); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database folder %s: %w", dir, err)
		}
	}
	return sql.Open(sqliteshim.ShimName, dsn)
}

// dsnDir returns the parent directory of a file-backed DSN, or "" for
// memory databases and bare filenames.
func dsnDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":") {
		return ""
	}
	if dir := filepath.Dir(path); dir != "." {
		return dir
	}
	return ""
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Analysis)(nil)).IfNotExists().Exec(ctx)
	return err
}

func StoreAnalysis(ctx context.Context, db *bun.DB, result *models.AnalysisResult, filename string) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}
	record := &Analysis{
		ID:        result.ID,
		Filename:  filename,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	_, err = db.NewInsert().Model(record).Exec(ctx)
	return err
}

func GetAnalysis(ctx context.Context, db *bun.DB, id string) (*models.AnalysisResult, error) {
	record := new(Analysis)
	err := db.NewSelect().Model(record).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(record.Payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &result, nil
}

func ListAnalyses(ctx context.Context, db *bun.DB) ([]models.DocumentInfo, error) {
	var records []Analysis
	err := db.NewSelect().
		Model(&records).
		Column("id", "filename", "created_at").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]models.DocumentInfo, len(records))
	for i, r := range records {
		infos[i] = models.DocumentInfo{ID: r.ID, Filename: r.Filename, CreatedAt: r.CreatedAt}
	}
	return infos, nil
}
