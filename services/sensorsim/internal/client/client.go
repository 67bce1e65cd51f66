// Package client pushes readings to the ingestion endpoint.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/bantaybaha/floodwatch/services/sensorsim/internal/gauge"
)

// Ack is the part of the ingestion response the simulator cares about.
type Ack struct {
	ID        int64  `json:"id"`
	Threshold string `json:"threshold"`
	Timestamp string `json:"timestamp"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    *Ack   `json:"data"`
	Error   string `json:"error"`
}

// Client sends readings as query parameters, the way the field firmware does.
type Client struct {
	http    *http.Client
	url     string
	apiKey  string
	encoder *schema.Encoder
}

func New(httpClient *http.Client, ingestURL, apiKey string) *Client {
	return &Client{http: httpClient, url: ingestURL, apiKey: apiKey, encoder: schema.NewEncoder()}
}

// Push submits one reading and returns the stored sample's acknowledgement.
func (c *Client) Push(ctx context.Context, r gauge.Reading) (Ack, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return Ack{}, fmt.Errorf("parse ingest url: %w", err)
	}
	q := u.Query()
	if err := c.encoder.Encode(r, q); err != nil {
		return Ack{}, fmt.Errorf("encode reading: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Ack{}, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Ack{}, fmt.Errorf("request ingest: %w", err)
	}
	defer resp.Body.Close()

	var body envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && body.Error != "" {
			return Ack{}, fmt.Errorf("unexpected status %s: %s", resp.Status, body.Error)
		}
		return Ack{}, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if decodeErr != nil {
		return Ack{}, fmt.Errorf("decode payload: %w", decodeErr)
	}
	if !body.Success || body.Data == nil {
		return Ack{}, fmt.Errorf("ingest rejected: %s", body.Error)
	}
	return *body.Data, nil
}
