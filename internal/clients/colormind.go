package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RGB is one color as the palette API encodes it.
type RGB [3]uint8

// ColormindClient asks colormind.io to complete a five-color palette.
type ColormindClient struct {
	url        string
	httpClient *http.Client
}

func NewColormindClient(url string, timeout time.Duration) *ColormindClient {
	return &ColormindClient{url: url, httpClient: &http.Client{Timeout: timeout}}
}

type colormindResponse struct {
	Result [][]int `json:"result"`
}

// Complete sends up to two seed colors, padding the rest of the input with "N", and
// returns the palette the API generated. It does not check the palette length.
func (c *ColormindClient) Complete(ctx context.Context, seeds []RGB) ([]RGB, error) {
	input := make([]any, 0, 5)
	for i, s := range seeds {
		if i == 2 {
			break
		}
		input = append(input, []int{int(s[0]), int(s[1]), int(s[2])})
	}
	for len(input) < 5 {
		input = append(input, "N")
	}

	jsonData, err := json.Marshal(map[string]any{"input": input, "model": "default"})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Colormind API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("colormind API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed colormindResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	palette := make([]RGB, 0, len(parsed.Result))
	for _, entry := range parsed.Result {
		if len(entry) != 3 {
			return nil, fmt.Errorf("malformed palette entry %v", entry)
		}
		palette = append(palette, RGB{clamp(entry[0]), clamp(entry[1]), clamp(entry[2])})
	}
	return palette, nil
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
