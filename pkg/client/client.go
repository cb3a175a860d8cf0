// Package client provides a typed HTTP client for the EnviRon API and the
// upload lifecycle state machine built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LatLng is a geographic point.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Facility is one nearby disposal facility.
type Facility struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Rating  string `json:"rating"`
}

// ClassifyRequest is the wire format for a classification call.
type ClassifyRequest struct {
	ImageBase64  string  `json:"imageBase64"`
	UserID       string  `json:"userId"`
	UserLocation *LatLng `json:"userLocation,omitempty"`
}

// ClassifyResponse is the wire format for a classification result.
type ClassifyResponse struct {
	Labels       []string   `json:"labels"`
	WasteType    string     `json:"wasteType"`
	Locations    []Facility `json:"locations"`
	Instructions string     `json:"instructions"`
	Tip          string     `json:"tip"`
}

// RecordCommand is the wire format for recording a classification event.
type RecordCommand struct {
	UserID   string `json:"userId"`
	Category string `json:"category"`
}

// RecordResult reports the state after recording one classification.
type RecordResult struct {
	Points   int     `json:"points"`
	NewBadge *string `json:"newBadge,omitempty"`
}

// Progress is a user's cumulative state.
type Progress struct {
	UserID string   `json:"userId"`
	Points int      `json:"points"`
	Badges []string `json:"badges"`
}

// Client calls the EnviRon API with bearer-token authentication.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080/api").
// An empty token is allowed; authenticated calls will fail until one is set.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasSession reports whether a session token is attached.
func (c *Client) HasSession() bool {
	return c.token != ""
}

// ClassifyWaste classifies an image and returns the composed result.
func (c *Client) ClassifyWaste(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	var resp ClassifyResponse
	if err := c.post(ctx, "/classify-waste", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecordClassification appends a classification event to the user's ledger.
func (c *Client) RecordClassification(ctx context.Context, userID, category string) (*RecordResult, error) {
	var result RecordResult
	cmd := RecordCommand{UserID: userID, Category: category}
	if err := c.post(ctx, "/progress/classifications", cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserProgress fetches a user's cumulative points and badges.
func (c *Client) UserProgress(ctx context.Context, userID string) (*Progress, error) {
	var p Progress
	if err := c.get(ctx, "/progress/"+userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrAuthenticationRequired
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, payload.Error)
	}
	return fmt.Errorf("%s", resp.Status)
}
