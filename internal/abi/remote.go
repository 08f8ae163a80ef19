package abi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchURL downloads an ABI (raw array or compiler artifact) over HTTP.
// Returns the parsed entries and the normalized ABI array text.
func FetchURL(ctx context.Context, url string) ([]Entry, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching ABI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching ABI: HTTP %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, "", fmt.Errorf("reading ABI response: %w", err)
	}
	return parseAny(data, url)
}

// parseAny accepts a raw ABI array or an artifact wrapper and returns the
// entries plus the raw array text.
func parseAny(data []byte, source string) ([]Entry, string, error) {
	if text, ok := unwrapArtifact(data); ok {
		data = text
	}
	abi, err := Parse(data)
	if err != nil {
		return nil, "", err
	}
	if err := validate(abi, source); err != nil {
		return nil, "", err
	}
	return abi, string(data), nil
}
