package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	m := NewManager(Config{EncryptionKey: "test-passphrase"})

	inputs := []string{
		"你好，世界",
		"hello world",
		"",
		`[{"type":"city","value":"北京"}]`,
	}
	for _, plain := range inputs {
		ct, err := m.Encrypt(plain)
		require.NoError(t, err, "plain %q", plain)
		assert.NotEqual(t, plain, ct)

		got, err := m.Decrypt(ct)
		require.NoError(t, err, "plain %q", plain)
		assert.Equal(t, plain, got)
	}
}

func TestDecryptRejectsCorruptCiphertext(t *testing.T) {
	m := NewManager(Config{EncryptionKey: "test-passphrase"})

	tests := []string{
		"not base64 at all!!",
		"YWJj", // valid base64, too short
		"",
	}
	for _, ct := range tests {
		_, err := m.Decrypt(ct)
		assert.ErrorIs(t, err, ErrInvalidCiphertext, "ciphertext %q", ct)
	}
}

func TestEncryptIsNondeterministic(t *testing.T) {
	m := NewManager(Config{EncryptionKey: "test-passphrase"})

	a, err := m.Encrypt("重复内容")
	require.NoError(t, err)
	b, err := m.Encrypt("重复内容")
	require.NoError(t, err)

	// Fresh IV per call.
	assert.NotEqual(t, a, b)
}

func TestHashDeterministic(t *testing.T) {
	m := NewManager(Config{EncryptionKey: "k"})

	h := m.Hash("数据")
	assert.Len(t, h, 64)
	assert.Equal(t, h, m.Hash("数据"))
	assert.NotEqual(t, h, m.Hash("别的数据"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelUser, ParseLevel("user"))
	assert.Equal(t, LevelAdmin, ParseLevel("admin"))
	assert.Equal(t, LevelSuperAdmin, ParseLevel("super_admin"))
	assert.Equal(t, LevelGuest, ParseLevel("guest"))
	assert.Equal(t, LevelGuest, ParseLevel("nonsense"))
}

func TestHasPermission(t *testing.T) {
	guest := NewManager(Config{PermissionLevel: "guest"})
	assert.True(t, guest.HasPermission("weather"))
	assert.False(t, guest.HasPermission("open"))
	assert.False(t, guest.HasPermission("shutdown"))

	user := NewManager(Config{PermissionLevel: "user"})
	assert.True(t, user.HasPermission("open"))
	assert.True(t, user.HasPermission("play"))
	assert.False(t, user.HasPermission("settings"))

	admin := NewManager(Config{PermissionLevel: "admin"})
	assert.True(t, admin.HasPermission("restart"))
	assert.False(t, admin.HasPermission("shutdown"))

	super := NewManager(Config{PermissionLevel: "super_admin"})
	assert.True(t, super.HasPermission("shutdown"))

	// Unlisted actions are open to everyone.
	assert.True(t, guest.HasPermission("chitchat"))
}

func TestRequireConfirmation(t *testing.T) {
	m := NewManager(Config{RequireConfirmation: true})
	assert.True(t, m.RequireConfirmation())

	m = NewManager(Config{RequireConfirmation: false})
	assert.False(t, m.RequireConfirmation())
}
