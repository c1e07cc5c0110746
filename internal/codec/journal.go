// Package codec seals learner journals for storage in the progress row.
//
// Sealed layout:
//
//	version (1 byte) | key id length (1 byte) | key id | nonce (24 bytes) | ciphertext
//
// The header up to and including the key id is authenticated as associated
// data, so a sealed journal cannot be moved to a different key or layout.
package codec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/heartmarshall/pathgraph/internal/domain"
)

const formatVersion byte = 1

// JournalCodec encrypts and decrypts domain.Journal values with
// XChaCha20-Poly1305.
type JournalCodec struct {
	keyID  string
	header []byte
	aead   cipher.AEAD
}

// NewJournalCodec creates a codec for a 32-byte key. keyID is recorded in
// every sealed journal.
func NewJournalCodec(key []byte, keyID string) (*JournalCodec, error) {
	if len(keyID) == 0 || len(keyID) > 255 {
		return nil, fmt.Errorf("codec: key id must be 1..255 bytes (got %d)", len(keyID))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}

	header := make([]byte, 0, 2+len(keyID))
	header = append(header, formatVersion, byte(len(keyID)))
	header = append(header, keyID...)

	return &JournalCodec{keyID: keyID, header: header, aead: aead}, nil
}

// Encode serializes and seals j.
func (c *JournalCodec) Encode(j domain.Journal) ([]byte, error) {
	if j.Version == 0 {
		j.Version = domain.JournalVersion
	}
	plaintext, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal journal: %w", err)
	}

	nonceSize := c.aead.NonceSize()
	out := make([]byte, len(c.header)+nonceSize, len(c.header)+nonceSize+len(plaintext)+c.aead.Overhead())
	copy(out, c.header)
	nonce := out[len(c.header):]
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("codec: nonce: %w", err)
	}

	return c.aead.Seal(out, nonce, plaintext, c.header), nil
}

// Decode opens and deserializes a sealed journal. An empty input decodes to a
// new empty journal. Any authentication or format failure is reported as
// domain.ErrCorrupted.
func (c *JournalCodec) Decode(sealed []byte) (domain.Journal, error) {
	if len(sealed) == 0 {
		return domain.NewJournal(), nil
	}

	header, rest, err := c.splitHeader(sealed)
	if err != nil {
		return domain.Journal{}, err
	}

	nonceSize := c.aead.NonceSize()
	if len(rest) < nonceSize+c.aead.Overhead() {
		return domain.Journal{}, corrupted(errors.New("truncated"))
	}
	plaintext, err := c.aead.Open(nil, rest[:nonceSize], rest[nonceSize:], header)
	if err != nil {
		return domain.Journal{}, corrupted(err)
	}

	var j domain.Journal
	if err := json.Unmarshal(plaintext, &j); err != nil {
		return domain.Journal{}, corrupted(err)
	}
	if j.Version > domain.JournalVersion {
		return domain.Journal{}, corrupted(fmt.Errorf("journal version %d is newer than %d", j.Version, domain.JournalVersion))
	}
	if j.Events == nil {
		j.Events = []domain.TraversalEvent{}
	}
	if j.Preferences == nil {
		j.Preferences = map[string]string{}
	}
	return j, nil
}

func (c *JournalCodec) splitHeader(sealed []byte) (header, rest []byte, err error) {
	if len(sealed) < 2 {
		return nil, nil, corrupted(errors.New("truncated header"))
	}
	if sealed[0] != formatVersion {
		return nil, nil, corrupted(fmt.Errorf("unsupported format %d", sealed[0]))
	}
	n := int(sealed[1])
	if len(sealed) < 2+n {
		return nil, nil, corrupted(errors.New("truncated key id"))
	}
	if keyID := string(sealed[2 : 2+n]); keyID != c.keyID {
		return nil, nil, corrupted(fmt.Errorf("sealed with key %q, have %q", keyID, c.keyID))
	}
	return sealed[:2+n], sealed[2+n:], nil
}

func corrupted(err error) error {
	return fmt.Errorf("codec: %w: %w", domain.ErrCorrupted, err)
}
