package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// sealer encrypts cookie payloads with AES-GCM keyed by SHA-256(secret).
type sealer struct {
	aead cipher.AEAD
}

func newSealer(secret []byte) (*sealer, error) {
	key := sha256.Sum256(secret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: aead}, nil
}

// seal binds the ciphertext to the cookie name so a value can't be
// replayed under another cookie.
func (s *sealer) seal(name string, plaintext []byte) string {
	nonce := make([]byte, s.aead.NonceSize())
	_, _ = rand.Read(nonce)
	return base64.RawURLEncoding.EncodeToString(s.aead.Seal(nonce, nonce, plaintext, []byte(name)))
}

func (s *sealer) open(name, encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrDecrypt
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, ErrDecrypt
	}
	plaintext, err := s.aead.Open(nil, data[:n], data[n:], []byte(name))
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// SetEncrypted stores value as JSON in an encrypted cookie.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name string, value any, maxAge time.Duration) error {
	if m.aead == nil {
		return ErrNoSecret
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(name, m.aead.seal(name, data), int(maxAge.Seconds())))
	return nil
}

// GetEncrypted decrypts the named cookie into dest.
func (m *Manager) GetEncrypted(r *http.Request, name string, dest any) error {
	if m.aead == nil {
		return ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return err
	}
	data, err := m.aead.open(name, raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Join(ErrDecrypt, err)
	}
	return nil
}

// Pop reads an encrypted cookie and deletes it in the same response.
// The cookie is deleted even when decryption fails.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request, name string, dest any) error {
	err := m.GetEncrypted(r, name, dest)
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNoSecret) {
		m.Delete(w, name)
	}
	return err
}

const flashPrefix = "flash_"

// SetFlash stores a one-shot message read back by [Manager.Flash].
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	return m.SetEncrypted(w, flashPrefix+key, value, 0)
}

func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	return m.Pop(w, r, flashPrefix+key, dest)
}
