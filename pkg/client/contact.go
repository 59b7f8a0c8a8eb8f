package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ContactRequest is the body of a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the response from submitting the contact form.
type ContactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ContactMessage is a stored contact form message.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessageList is the response from listing contact messages.
type ContactMessageList struct {
	Messages []ContactMessage `json:"messages"`
}

// SubmitContact sends a contact form message.
func (c *Client) SubmitContact(ctx context.Context, in ContactRequest) (*ContactResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "failed to submit contact message", http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListContactMessages returns every contact message, newest first.
func (c *Client) ListContactMessages(ctx context.Context) (*ContactMessageList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/contact", nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)

	resp, err := c.do(req, "failed to list contact messages", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ContactMessageList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
