package common

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mounasaba/billing_service/billing_core"
)

// Cursor is an opaque keyset position over (timestamp, id).
type Cursor struct {
	Time time.Time `json:"t"`
	ID   uuid.UUID `json:"id"`
}

func EncodeCursor(t time.Time, id uuid.UUID) string {
	raw, _ := json.Marshal(Cursor{Time: t, ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeCursor(s string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, billing_core.InvalidInputf("malformed cursor")
	}

	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return nil, billing_core.InvalidInputf("malformed cursor")
	}

	return &cursor, nil
}

// ClampLimit normalizes a page size into [1, 50], defaulting to 20.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 50 {
		return 50
	}
	return limit
}
