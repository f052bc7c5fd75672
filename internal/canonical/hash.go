package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Hash domains. The version suffix allows the layout to change later.
const (
	DomainExport = "recordq/export/v1"
	DomainRecord = "recordq/record/v1"
)

// NewHash returns a SHA-256 hash already fed with domain and a 0x00
// separator, so equal data under different domains never collides.
func NewHash(domain string) hash.Hash {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	return h
}

// Digest returns the hex SHA-256 of data under domain.
func Digest(domain string, data []byte) string {
	h := NewHash(domain)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordDigest returns the content hash of a record's canonical form.
func RecordDigest(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return Digest(DomainRecord, data), nil
}
