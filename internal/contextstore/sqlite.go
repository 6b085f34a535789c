package contextstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skillpathlabs/personalization/internal/semantics"
	"github.com/skillpathlabs/personalization/internal/similarity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS context_records (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	type       TEXT NOT NULL,
	source     TEXT NOT NULL,
	content    TEXT NOT NULL,
	embedding  BLOB,
	timestamp  INTEGER NOT NULL,
	importance REAL NOT NULL,
	keywords   TEXT NOT NULL,
	analysis   TEXT NOT NULL,
	metadata   TEXT
);
CREATE INDEX IF NOT EXISTS idx_context_records_user_time
	ON context_records(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_context_records_user_type
	ON context_records(user_id, type);
`

// SQLiteStore is a durable PersistenceAdapter backed by SQLite
// (modernc.org/sqlite, no cgo). Embeddings are stored as packed
// little-endian float32 BLOBs; analysis and metadata as JSON; timestamps
// as unix nanoseconds so that ordering and range filters compare
// numerically.
//
// The table is append-only: there is no update or delete path.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the store at path, creating parent
// directories and the schema as needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent append behavior.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append inserts the record. Inserts are independent, so concurrent
// appenders need no coordination beyond SQLite's own locking.
func (s *SQLiteStore) Append(ctx context.Context, record Record) error {
	if record.UserID == "" {
		return ErrEmptyUserID
	}

	keywords, err := json.Marshal(record.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	analysis, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	var metadata []byte
	if record.Metadata != nil {
		if metadata, err = json.Marshal(record.Metadata); err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
	}

	var embedding []byte
	if len(record.Embedding) > 0 {
		embedding = similarity.PackFloat32(record.Embedding)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO context_records
			(id, user_id, type, source, content, embedding, timestamp, importance, keywords, analysis, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		string(record.Type),
		record.Source,
		record.Content,
		embedding,
		record.Timestamp.UnixNano(),
		record.Importance,
		string(keywords),
		string(analysis),
		nullableString(metadata),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// QueryByUser returns matching records ordered by timestamp ascending. A
// positive limit keeps only the most recent limit records.
func (s *SQLiteStore) QueryByUser(ctx context.Context, userID string, f Filter, limit int) ([]Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, user_id, type, source, content, embedding, timestamp, importance, keywords, analysis, metadata
		FROM context_records
		WHERE user_id = ?`)
	args := []any{userID}

	if len(f.Types) > 0 {
		query.WriteString(" AND type IN (?" + strings.Repeat(",?", len(f.Types)-1) + ")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if !f.Since.IsZero() {
		query.WriteString(" AND timestamp >= ?")
		args = append(args, f.Since.UnixNano())
	}

	// For a limited query, select the newest rows first and reverse below.
	if limit > 0 {
		query.WriteString(" ORDER BY timestamp DESC LIMIT ?")
		args = append(args, limit)
	} else {
		query.WriteString(" ORDER BY timestamp ASC")
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	if limit > 0 {
		reverseRecords(records)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec       Record
		typ       string
		embedding []byte
		ts        int64
		keywords  string
		analysis  string
		metadata  sql.NullString
	)

	if err := rows.Scan(&rec.ID, &rec.UserID, &typ, &rec.Source, &rec.Content,
		&embedding, &ts, &rec.Importance, &keywords, &analysis, &metadata); err != nil {
		return Record{}, fmt.Errorf("scan record: %w", err)
	}

	rec.Type = RecordType(typ)
	rec.Embedding = similarity.UnpackFloat32(embedding)
	rec.Timestamp = time.Unix(0, ts).UTC()

	if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
		return Record{}, fmt.Errorf("unmarshal keywords: %w", err)
	}
	rec.Analysis = semantics.Analysis{}
	if err := json.Unmarshal([]byte(analysis), &rec.Analysis); err != nil {
		return Record{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &rec.Metadata); err != nil {
			return Record{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return rec, nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func reverseRecords(records []Record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
