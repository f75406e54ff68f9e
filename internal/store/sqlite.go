package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const DefaultStateKey = "default"

// ErrChecksumMismatch comes with the stored bytes so callers can still try
// to decode them.
var ErrChecksumMismatch = errors.New("state checksum mismatch")

// SQLiteStorage keeps the blob as one row of the app_state table.
type SQLiteStorage struct {
	db  *sql.DB
	key string
}

func NewSQLiteStorage(db *sql.DB, key string) *SQLiteStorage {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultStateKey
	}
	return &SQLiteStorage{db: db, key: key}
}

func (s *SQLiteStorage) Load(ctx context.Context) ([]byte, error) {
	var data, checksum string
	err := s.db.QueryRowContext(ctx, `SELECT data, checksum FROM app_state WHERE key = ?`, s.key).Scan(&data, &checksum)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", s.key, err)
	}
	if checksum != "" && checksum != blobChecksum([]byte(data)) {
		return []byte(data), fmt.Errorf("state %q: %w", s.key, ErrChecksumMismatch)
	}
	return []byte(data), nil
}

func (s *SQLiteStorage) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO app_state(key, schema_version, data, checksum, updated_at)
VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
  schema_version=excluded.schema_version,
  data=excluded.data,
  checksum=excluded.checksum,
  updated_at=excluded.updated_at
`, s.key, SchemaVersion, string(data), blobChecksum(data))
	if err != nil {
		return fmt.Errorf("save state %q: %w", s.key, err)
	}
	return nil
}

func blobChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
