package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefixCipher is a trivially reversible cipher for deterministic tests.
type prefixCipher struct{}

func (prefixCipher) Encrypt(plain string) (string, error) {
	return "enc:" + plain, nil
}

func (prefixCipher) Decrypt(encrypted string) (string, error) {
	rest, ok := strings.CutPrefix(encrypted, "enc:")
	if !ok {
		return "", fmt.Errorf("bad ciphertext %q", encrypted)
	}
	return rest, nil
}

func newTestStore(t *testing.T, maxRows int, encrypt bool) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	var cipher Cipher
	if encrypt {
		cipher = prefixCipher{}
	}
	s, err := NewStore(Config{Path: path, MaxRows: maxRows}, cipher, encrypt)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func appendTurn(t *testing.T, s *Store, i int, ts time.Time) {
	t.Helper()
	err := s.Append(context.Background(), &Record{
		Timestamp: ts,
		UserInput: fmt.Sprintf("输入%d", i),
		Intent:    "weather",
		Entities:  `[{"type":"city","value":"北京"}]`,
		Response:  fmt.Sprintf("回复%d", i),
	})
	require.NoError(t, err)
}

func TestAppendAndListRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, 10, false)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		appendTurn(t, s, i, base.Add(time.Duration(i)*time.Minute))
	}

	records, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Oldest first.
	assert.Equal(t, "输入0", records[0].UserInput)
	assert.Equal(t, "输入2", records[2].UserInput)
	assert.Equal(t, "weather", records[0].Intent)
	assert.Equal(t, "回复0", records[0].Response)
}

func TestRetentionEvictsOldest(t *testing.T) {
	s, _ := newTestStore(t, 3, false)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		appendTurn(t, s, i, base.Add(time.Duration(i)*time.Minute))
	}

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "输入4", records[0].UserInput)
	assert.Equal(t, "输入6", records[2].UserInput)
}

func TestEncryptionRoundTrip(t *testing.T) {
	s, path := newTestStore(t, 10, true)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	appendTurn(t, s, 0, base)

	// The listing decrypts transparently.
	records, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "输入0", records[0].UserInput)
	assert.Equal(t, "回复0", records[0].Response)
	assert.False(t, records[0].Encrypted)

	// The rows on disk hold ciphertext, not plaintext.
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var userInput string
	var encrypted int
	err = db.QueryRow(`SELECT user_input, is_encrypted FROM dialogue_history`).Scan(&userInput, &encrypted)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(userInput, "enc:"))
	assert.Equal(t, 1, encrypted)
}

func TestCorruptedRowSkipped(t *testing.T) {
	s, path := newTestStore(t, 10, true)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		appendTurn(t, s, i, base.Add(time.Duration(i)*time.Minute))
	}

	// Corrupt the middle row behind the store's back.
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE dialogue_history SET user_input = 'garbage' WHERE user_input LIKE '%输入1%'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	records, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "输入0", records[0].UserInput)
	assert.Equal(t, "输入2", records[1].UserInput)
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t, 10, false)
	appendTurn(t, s, 0, time.Now())

	require.NoError(t, s.Clear(context.Background()))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEncryptionRequiresCipher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	_, err := NewStore(Config{Path: path, MaxRows: 10}, nil, true)
	assert.Error(t, err)
}
