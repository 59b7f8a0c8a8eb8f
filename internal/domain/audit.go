package domain

import (
	"encoding/json"
	"time"
)

// AuditEntry records one administrative action.
type AuditEntry struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Target    string          `json:"target,omitempty"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	IPAddress string          `json:"ip_address,omitempty"`
}
