// Package history persists the auditable dialogue log: one append-only row
// per resolved turn, optionally encrypted, with fixed-size FIFO retention.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	errx "github.com/4lin107/xiaozhi-assistant/internal/core/error"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

// Config carries the history store settings. MaxRows is the retention bound:
// rows beyond it are evicted oldest-first after every append.
type Config struct {
	Path    string `envconfig:"HISTORY_DB_PATH" default:"data/dialogue_history.db"`
	MaxRows int    `envconfig:"HISTORY_MAX_ROWS" default:"10"`
}

// Cipher is the slice of the security capability the store needs. Encrypt and
// decrypt must round-trip exactly.
type Cipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(encrypted string) (string, error)
}

// Record is one persisted dialogue turn. When Encrypted is set, UserInput,
// Entities and Response hold ciphertext; the fields are never mixed within
// one record.
type Record struct {
	ID        int64
	Timestamp time.Time
	UserInput string
	Intent    string
	Entities  string
	Response  string
	Encrypted bool
}

// Store is the SQLite-backed history log.
type Store struct {
	db      *sql.DB
	maxRows int
	encrypt bool
	cipher  Cipher
	mu      sync.Mutex
}

// NewStore opens (or creates) the history database. encrypt selects the
// storage policy; it requires a cipher.
func NewStore(cfg Config, cipher Cipher, encrypt bool) (*Store, error) {
	if encrypt && cipher == nil {
		return nil, fmt.Errorf("history: encryption enabled without a cipher")
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 10
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errx.WrapStore(err)
	}

	s := &Store{db: db, maxRows: cfg.MaxRows, encrypt: encrypt, cipher: cipher}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errx.WrapStore(err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS dialogue_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			user_input TEXT NOT NULL,
			intent TEXT NOT NULL,
			entities TEXT,
			response TEXT,
			is_encrypted INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_history_timestamp ON dialogue_history(timestamp);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append persists one turn and applies the retention policy. The encryption
// policy decides the stored form of user_input, entities and response
// atomically for the whole record.
func (s *Store) Append(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userInput, entities, response := rec.UserInput, rec.Entities, rec.Response
	encrypted := false
	if s.encrypt {
		var err error
		if userInput, err = s.cipher.Encrypt(userInput); err != nil {
			return errx.WrapCipher(err)
		}
		if entities, err = s.cipher.Encrypt(entities); err != nil {
			return errx.WrapCipher(err)
		}
		if response, err = s.cipher.Encrypt(response); err != nil {
			return errx.WrapCipher(err)
		}
		encrypted = true
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dialogue_history (timestamp, user_input, intent, entities, response, is_encrypted)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ts, userInput, rec.Intent, entities, response, boolToInt(encrypted))
	if err != nil {
		return errx.WrapStore(err)
	}

	return s.trim(ctx)
}

// trim enforces FIFO retention: delete the oldest rows by timestamp until the
// row count equals the configured maximum.
func (s *Store) trim(ctx context.Context) error {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dialogue_history`).Scan(&total); err != nil {
		return errx.WrapStore(err)
	}
	if total <= s.maxRows {
		return nil
	}

	excess := total - s.maxRows
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM dialogue_history
		WHERE id IN (
			SELECT id FROM dialogue_history
			ORDER BY timestamp ASC, id ASC
			LIMIT ?
		)
	`, excess)
	if err != nil {
		return errx.WrapStore(err)
	}
	logx.Info().Int("evicted", excess).Msg("trimmed dialogue history")
	return nil
}

// ListRecent returns up to limit most-recent records, ordered oldest-first.
// A record that fails to decrypt is logged and skipped; the rest of the
// listing is unaffected.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, user_input, intent, entities, response, is_encrypted
		FROM dialogue_history
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errx.WrapStore(err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec       Record
			encrypted int
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.UserInput, &rec.Intent,
			&rec.Entities, &rec.Response, &encrypted); err != nil {
			return nil, errx.WrapStore(err)
		}
		rec.Encrypted = encrypted != 0

		if rec.Encrypted {
			userInput, err := s.cipher.Decrypt(rec.UserInput)
			if err != nil {
				logx.Error().Err(err).Int64("id", rec.ID).Msg("failed to decrypt history row, skipping")
				continue
			}
			entities, err := s.cipher.Decrypt(rec.Entities)
			if err != nil {
				logx.Error().Err(err).Int64("id", rec.ID).Msg("failed to decrypt history row, skipping")
				continue
			}
			response, err := s.cipher.Decrypt(rec.Response)
			if err != nil {
				logx.Error().Err(err).Int64("id", rec.ID).Msg("failed to decrypt history row, skipping")
				continue
			}
			rec.UserInput, rec.Entities, rec.Response = userInput, entities, response
			rec.Encrypted = false
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapStore(err)
	}

	// Query order is newest-first; callers read history oldest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Count returns the number of retained rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dialogue_history`).Scan(&n); err != nil {
		return 0, errx.WrapStore(err)
	}
	return n, nil
}

// Clear removes every retained row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dialogue_history`); err != nil {
		return errx.WrapStore(err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
