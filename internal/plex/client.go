// Package plex is a minimal client for the Plex Media Server HTTP API,
// covering the endpoints a library sweep needs: section listing, section
// item counts, trash emptying, and server identity.
package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Sweeparr/1.0"
	clientID       = "sweeparr-janitor"
)

// Client interacts with the Plex Media Server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new Plex client.
func NewClient(baseURL, token string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log.With("component", "plex"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Section is one library section as reported by the server.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Identity holds Plex server identity information.
type Identity struct {
	MachineID string
	Version   string
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Client-Identifier", clientID)
	req.Header.Set("X-Plex-Product", "Sweeparr")
	req.Header.Set("X-Plex-Version", "1.0")
	req.Header.Set("User-Agent", userAgent)
}

// doRequest performs an authenticated request and returns the response body.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	c.log.Debug("plex request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return body, nil
}

// sectionsResponse is the JSON response from /library/sections.
type sectionsResponse struct {
	MediaContainer struct {
		Directory []Section `json:"Directory"`
	} `json:"MediaContainer"`
}

// ListSections returns all library sections.
func (c *Client) ListSections(ctx context.Context) ([]Section, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/library/sections", nil)
	if err != nil {
		return nil, err
	}

	var result sectionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.MediaContainer.Directory, nil
}

// Sections returns the library sections as a title-to-key map.
func (c *Client) Sections(ctx context.Context) (map[string]string, error) {
	sections, err := c.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]string, len(sections))
	for _, sec := range sections {
		byTitle[sec.Title] = sec.Key
	}
	return byTitle, nil
}

// sizeResponse is the JSON response for a section item count.
type sizeResponse struct {
	MediaContainer struct {
		Size      int `json:"size"`
		TotalSize int `json:"totalSize"`
	} `json:"MediaContainer"`
}

// SectionSize returns the number of items in a library section.
func (c *Client) SectionSize(ctx context.Context, sectionKey string) (int, error) {
	// X-Plex-Container-Size=0 gets just the count without items.
	query := url.Values{}
	query.Set("X-Plex-Container-Size", "0")

	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/library/sections/%s/all", sectionKey), query)
	if err != nil {
		return 0, err
	}

	var result sizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	// Older servers report the count as size rather than totalSize.
	if result.MediaContainer.TotalSize > 0 {
		return result.MediaContainer.TotalSize, nil
	}
	return result.MediaContainer.Size, nil
}

// EmptyTrash empties the trash of a library section. The boolean reports
// whether the server accepted the request; transport failures and auth
// rejections are returned as errors.
func (c *Client) EmptyTrash(ctx context.Context, sectionKey string) (bool, error) {
	reqURL := fmt.Sprintf("%s/library/sections/%s/emptyTrash", c.baseURL, sectionKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	c.log.Debug("plex request", "method", http.MethodPut, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return false, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("empty trash rejected", "section", sectionKey, "status", resp.StatusCode)
		return false, nil
	}

	return true, nil
}

// identityResponse is the JSON response from /identity.
type identityResponse struct {
	MediaContainer struct {
		MachineIdentifier string `json:"machineIdentifier"`
		Version           string `json:"version"`
	} `json:"MediaContainer"`
}

// GetIdentity returns the Plex server identity. Used as a connectivity and
// authentication probe.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/identity", nil)
	if err != nil {
		return nil, err
	}

	var result identityResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &Identity{
		MachineID: result.MediaContainer.MachineIdentifier,
		Version:   result.MediaContainer.Version,
	}, nil
}
