package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry records one administrative action against the fleet: who did
// what to which device, from where. Metadata carries action-specific
// detail as raw JSON and PayloadDigest pins its content.
type Entry struct {
	ID            string
	TenantID      string
	Actor         string
	Role          string
	Action        string
	ResourceType  string
	ResourceID    string
	Department    string
	Metadata      json.RawMessage
	PayloadDigest string
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}

// Logger writes audit entries. Implementations must be safe for
// concurrent use by HTTP handlers.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NewID generates a fresh audit entry id.
func NewID() string {
	return "audit-" + uuid.NewString()
}

// DigestJSON returns the SHA-256 hex digest of a metadata payload, empty
// for empty payloads.
func DigestJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// normalize fills generated fields so repositories store complete rows.
func (e *Entry) normalize(now time.Time) {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.PayloadDigest == "" {
		e.PayloadDigest = DigestJSON(e.Metadata)
	}
}
