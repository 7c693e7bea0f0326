// Package soundry implements the LibrarySource interface against the
// Soundry HTTP API: bearer-token auth, offset/limit pagination.
package soundry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soundry/reel/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second
)

// Client is the Soundry API client. It does no retrying of its own:
// every call is a single attempt, and the archiver decides which retry
// policy wraps it.
type Client struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Soundry API client
func NewClient(baseURL, token, userID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs one authenticated request against the API and
// returns the response body. Transport failures map to ErrServerOffline
// and rejected credentials to ErrAuthFailed.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("soundry request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("soundry request failed", "error", err)
		return nil, domain.ErrServerOffline
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrTrackNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("soundry request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// ValidateToken checks the configured credential against the API. An
// invalid credential is a fatal startup condition and is never retried.
func (c *Client) ValidateToken(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/me", nil)
	if err != nil {
		return err
	}

	var me MeResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if me.ID == "" {
		return domain.ErrAuthFailed
	}

	c.logger.Info("token validated", "user_id", me.ID, "username", me.Username)
	return nil
}

// WhoAmI returns the authenticated user's id and username
func (c *Client) WhoAmI(ctx context.Context) (string, string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/me", nil)
	if err != nil {
		return "", "", err
	}

	var me MeResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return "", "", fmt.Errorf("failed to parse response: %w", err)
	}
	if me.ID == "" {
		return "", "", domain.ErrAuthFailed
	}
	return me.ID, me.Username, nil
}

// FetchTracks returns one page of the user's generated tracks along
// with the total collection size reported by the server.
func (c *Client) FetchTracks(ctx context.Context, offset, limit int) ([]domain.Track, int, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("sort", "created_at")
	query.Set("order", "asc")

	path := fmt.Sprintf("/api/v1/users/%s/tracks", c.userID)
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, 0, err
	}

	var resp TracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapTracks(resp.Tracks), resp.Total, nil
}

// DownloadURL builds the download location for a track variant. Pure
// string construction, no network call.
func (c *Client) DownloadURL(trackID, format string) string {
	return fmt.Sprintf("%s/api/v1/tracks/%s/download?format=%s",
		c.baseURL, url.PathEscape(trackID), url.QueryEscape(format))
}

// OpenDownload opens the byte stream behind a download URL. The caller
// owns the returned reader and must close it.
func (c *Client) OpenDownload(ctx context.Context, downloadURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("soundry download failed", "error", err, "url", downloadURL)
		return nil, domain.ErrServerOffline
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, domain.ErrTrackNotFound
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
