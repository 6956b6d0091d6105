// Package seal hides a message behind a passphrase while keeping it valid text,
// so a sealed message still fits in a text chunk.
//
// Sealed format:
//
//	pngstash:v1:<base64(salt[16] || nonce[12] || ciphertext)>
//
// The key is derived with PBKDF2-HMAC-SHA256 and the message is encrypted with
// ChaCha20-Poly1305. The chunk type text is bound as associated data, so a sealed
// message moved to a different chunk type no longer opens.
package seal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

// Prefix marks sealed text
const Prefix = "pngstash:v1:"

const (
	saltSize   = 16
	keySize    = chacha20poly1305.KeySize
	nonceSize  = chacha20poly1305.NonceSize
	iterations = 100000
)

// Errors
var (
	ErrNotSealed       = errors.New("message is not sealed")
	ErrMalformed       = errors.New("sealed message is malformed")
	ErrWrongPassphrase = errors.New("wrong passphrase or tampered message")
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
)

// IsSealed reports whether text carries the sealed prefix
func IsSealed(text string) bool {
	return strings.HasPrefix(text, Prefix)
}

// Seal encrypts message with a key derived from passphrase, binding it to chunkType
func Seal(passphrase, chunkType, message string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, 0, saltSize+nonceSize+len(message)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(message), []byte(chunkType))

	return Prefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal
func Open(passphrase, chunkType, sealed string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}
	if !IsSealed(sealed) {
		return "", ErrNotSealed
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, Prefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) < saltSize+nonceSize+chacha20poly1305.Overhead {
		return "", ErrMalformed
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+nonceSize]
	ciphertext := raw[saltSize+nonceSize:]

	aead, err := chacha20poly1305.New(deriveKey(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	plain, err := aead.Open(nil, nonce, ciphertext, []byte(chunkType))
	if err != nil {
		return "", ErrWrongPassphrase
	}
	return string(plain), nil
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
}
