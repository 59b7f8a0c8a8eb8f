package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadyResponse reports the state of the server's dependencies.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Events   string `json:"events"`
}

// Health checks the server health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "health check failed", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, err
	}

	return &health, nil
}

// Ready checks if the server and its dependencies are ready.
func (c *Client) Ready(ctx context.Context) (*ReadyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/ready", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "server not ready", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ready ReadyResponse
	if err := json.NewDecoder(resp.Body).Decode(&ready); err != nil {
		return nil, err
	}

	return &ready, nil
}
