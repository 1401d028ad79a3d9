package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FeedClient pulls the latest sensor values from the relay
type FeedClient struct {
	url  string
	http *http.Client
}

func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the lotId -> free spots map currently held by the relay
func (c *FeedClient) Fetch(ctx context.Context) (map[string]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	// another instance's /api/sensors/latest wraps the map
	var envelope struct {
		Observations map[string]int `json:"observations"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Observations != nil {
		return envelope.Observations, nil
	}

	observations, err := DecodeObservations(body)
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return observations, nil
}
