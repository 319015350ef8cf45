package audit

import (
	"strings"
	"testing"
	"time"
)

func TestEntryNormalize(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	entry := Entry{
		Action:   "device.create",
		Metadata: []byte(`{"device_type":"Laptop"}`),
	}
	entry.normalize(now)

	if !strings.HasPrefix(entry.ID, "audit-") {
		t.Errorf("id = %q, want audit- prefix", entry.ID)
	}
	if !entry.CreatedAt.Equal(now) {
		t.Errorf("created at = %v, want %v", entry.CreatedAt, now)
	}
	if entry.PayloadDigest == "" {
		t.Error("digest not filled for metadata payload")
	}
	if entry.PayloadDigest != DigestJSON(entry.Metadata) {
		t.Error("digest does not match metadata")
	}
}

func TestEntryNormalizeKeepsExplicitFields(t *testing.T) {
	createdAt := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	entry := Entry{ID: "audit-fixed", CreatedAt: createdAt, PayloadDigest: "abc"}
	entry.normalize(time.Now())

	if entry.ID != "audit-fixed" || !entry.CreatedAt.Equal(createdAt) || entry.PayloadDigest != "abc" {
		t.Errorf("normalize overwrote explicit fields: %+v", entry)
	}
}

func TestDigestJSON(t *testing.T) {
	if DigestJSON(nil) != "" {
		t.Error("empty payload should yield empty digest")
	}
	first := DigestJSON([]byte(`{"a":1}`))
	second := DigestJSON([]byte(`{"a":2}`))
	if first == "" || first == second {
		t.Errorf("digests not distinct: %q vs %q", first, second)
	}
}
