package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Config carries the security capability settings.
type Config struct {
	EncryptionKey       string `envconfig:"SECURITY_ENCRYPTION_KEY" default:"default_encryption_key_123456789012345678901234"`
	EncryptUserData     bool   `envconfig:"SECURITY_ENCRYPT_USER_DATA" default:"true"`
	RequireConfirmation bool   `envconfig:"SECURITY_REQUIRE_CONFIRMATION" default:"true"`
	PermissionLevel     string `envconfig:"SECURITY_PERMISSION_LEVEL" default:"user"`
}

// ErrInvalidCiphertext is returned when ciphertext cannot be decrypted.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Manager implements the security capability: AES-256-CBC encryption with the
// key derived from the configured passphrase via SHA-256, and permission
// checks for sensitive actions. Ciphertext layout is base64(iv || blocks)
// with PKCS#7 padding.
type Manager struct {
	key                 [32]byte
	level               Level
	requireConfirmation bool
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		key:                 sha256.Sum256([]byte(cfg.EncryptionKey)),
		level:               ParseLevel(cfg.PermissionLevel),
		requireConfirmation: cfg.RequireConfirmation,
	}
}

// Encrypt returns the base64 ciphertext for plain. Round-trip with Decrypt is
// exact.
func (m *Manager) Encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(m.key[:])
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	buf := make([]byte, aes.BlockSize+len(padded))
	iv := buf[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[aes.BlockSize:], padded)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt reverses Encrypt. Corrupted or truncated ciphertext fails with
// ErrInvalidCiphertext instead of panicking.
func (m *Manager) Decrypt(encrypted string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}
	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad length %d", ErrInvalidCiphertext, len(raw))
	}

	block, err := aes.NewCipher(m.key[:])
	if err != nil {
		return "", err
	}

	iv, content := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(content))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, content)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: not valid utf-8", ErrInvalidCiphertext)
	}
	return string(plain), nil
}

// Hash returns the hex SHA-256 digest of data.
func (m *Manager) Hash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padded length", ErrInvalidCiphertext)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidCiphertext)
		}
	}
	return data[:len(data)-n], nil
}
