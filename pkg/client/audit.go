package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Target    string          `json:"target,omitempty"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	IPAddress string          `json:"ip_address,omitempty"`
}

// AuditListResponse is the response from listing audit entries.
type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
	Count   int          `json:"count"`
}

// AuditQueryOptions configures audit log queries.
type AuditQueryOptions struct {
	Action string
	Since  string // duration string like "1h", "30m"
	Limit  int
}

// AuditList queries the audit log. Requires the admin token.
func (c *Client) AuditList(ctx context.Context, opts AuditQueryOptions) (*AuditListResponse, error) {
	u, err := url.Parse(c.server + "/api/audit")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if opts.Action != "" {
		q.Set("action", opts.Action)
	}
	if opts.Since != "" {
		q.Set("since", opts.Since)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)

	resp, err := c.do(req, "failed to query audit log", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result AuditListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode audit log: %w", err)
	}

	return &result, nil
}
