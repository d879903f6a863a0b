// Package store is the SQLite-backed translation memory for document
// segments. Repeated lines (boilerplate list items recur across pages
// and revisions of a document) are served from memory instead of being
// re-translated.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// MemoryEntry is one remembered segment translation.
type MemoryEntry struct {
	ID          string
	SourceText  string
	SourceLang  string
	TargetLang  string
	FinalText   string
	ListKind    string
	ListLevel   int
	ServiceUsed string
	UsageCount  int
	LastUsed    time.Time
	CreatedAt   time.Time
}

// MemoryStats summarizes the segment memory for the cache command.
type MemoryStats struct {
	TotalEntries int
	ListEntries  int
	PlainEntries int
	TotalUsage   int
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	-- segment_memory caches per-line translations keyed by normalized
	-- source text and language pair. list_kind/list_level record the
	-- detected structure of the segment at save time ("none" for plain
	-- paragraph lines).
	CREATE TABLE IF NOT EXISTS segment_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		final_text TEXT NOT NULL,
		list_kind TEXT NOT NULL DEFAULT 'none',
		list_level INTEGER NOT NULL DEFAULT 0,
		service_used TEXT,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_lang, target_lang)
	);

	CREATE INDEX IF NOT EXISTS idx_segment_memory_lookup
		ON segment_memory(source_text, source_lang, target_lang);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// memoryKey canonicalizes source text so visually identical segments hit
// the same row regardless of unicode composition.
func memoryKey(sourceText string) string {
	return norm.NFC.String(strings.TrimSpace(sourceText))
}

// GetSegment returns the remembered translation for a segment and bumps
// its usage counters. found=false means a clean miss.
func (s *Store) GetSegment(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error) {
	key := memoryKey(sourceText)

	var id, finalText string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, final_text FROM segment_memory
		WHERE source_text = ? AND source_lang = ? AND target_lang = ?`,
		key, sourceLang, targetLang).Scan(&id, &finalText)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query memory: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE segment_memory
		SET usage_count = usage_count + 1, last_used = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return "", false, fmt.Errorf("failed to bump usage: %w", err)
	}

	return finalText, true, nil
}

// SaveSegment records a segment translation, replacing any previous
// entry for the same source text and language pair.
func (s *Store) SaveSegment(ctx context.Context, sourceText, sourceLang, targetLang, finalText, listKind string, listLevel int, serviceUsed string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO segment_memory
			(id, source_text, source_lang, target_lang, final_text, list_kind, list_level, service_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_text, source_lang, target_lang) DO UPDATE SET
			final_text = excluded.final_text,
			list_kind = excluded.list_kind,
			list_level = excluded.list_level,
			service_used = excluded.service_used,
			last_used = CURRENT_TIMESTAMP`,
		uuid.New().String(), memoryKey(sourceText), sourceLang, targetLang,
		finalText, listKind, listLevel, serviceUsed)
	if err != nil {
		return fmt.Errorf("failed to save segment: %w", err)
	}
	return nil
}

// ListMemory returns all entries, most recently used first.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_text, source_lang, target_lang, final_text,
		       list_kind, list_level, COALESCE(service_used, ''),
		       usage_count, last_used, created_at
		FROM segment_memory
		ORDER BY last_used DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory: %w", err)
	}
	defer rows.Close()

	var entries []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang,
			&e.FinalText, &e.ListKind, &e.ListLevel, &e.ServiceUsed,
			&e.UsageCount, &e.LastUsed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats reports aggregate counters over the memory.
func (s *Store) Stats(ctx context.Context) (*MemoryStats, error) {
	var st MemoryStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN list_kind != 'none' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN list_kind = 'none' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(usage_count), 0)
		FROM segment_memory`).
		Scan(&st.TotalEntries, &st.ListEntries, &st.PlainEntries, &st.TotalUsage)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &st, nil
}

// DeleteMemory removes a single entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM segment_memory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no entry with id %s", id)
	}
	return nil
}

// ClearMemory removes every entry and returns how many were deleted.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM segment_memory`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear memory: %w", err)
	}
	return res.RowsAffected()
}
