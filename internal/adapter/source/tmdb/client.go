package tmdb

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

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
)

// Options tunes listing requests
type Options struct {
	Language string // BCP 47 tag sent as ?language=
	Region   string // ISO 3166-1 code sent as ?region=
	Timeout  time.Duration
}

// Client implements domain.MovieRepository for the TMDB v3 API
type Client struct {
	baseURL    string
	token      string
	language   string
	region     string
	httpClient *http.Client
	logger     *slog.Logger

	now func() time.Time
}

// NewClient creates a new TMDB API client. token may be a v4 read access
// token (sent as a bearer header) or a v3 API key (sent as ?api_key=).
func NewClient(baseURL, token string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		language: opts.Language,
		region:   opts.Region,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// SetToken updates the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// isReadAccessToken reports whether the token is a v4 JWT rather than a v3 key
func isReadAccessToken(token string) bool {
	return strings.Count(token, ".") == 2
}

// doRequest performs an authenticated GET request
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, domain.ErrNotConfigured
	}
	if query == nil {
		query = url.Values{}
	}
	if !isReadAccessToken(c.token) {
		query.Set("api_key", c.token)
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if isReadAccessToken(c.token) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	var apiErr ErrorResponse
	_ = json.Unmarshal(body, &apiErr)
	c.logger.Error("tmdb request error",
		"status", resp.StatusCode,
		"code", apiErr.StatusCode,
		"message", apiErr.StatusMessage,
		"path", path,
	)
	if apiErr.StatusMessage != "" {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.StatusMessage)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

func (c *Client) localeQuery() url.Values {
	query := url.Values{}
	if c.language != "" {
		query.Set("language", c.language)
	}
	return query
}

// ListMovies returns one page of a category listing
func (c *Client) ListMovies(ctx context.Context, category domain.Category, page int) (*domain.ResultSet, error) {
	if page < 1 {
		page = 1
	}
	query := c.localeQuery()
	query.Set("page", strconv.Itoa(page))
	if c.region != "" {
		query.Set("region", c.region)
	}

	body, err := c.doRequest(ctx, "/movie/"+string(category), query)
	if err != nil {
		return nil, err
	}

	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	return MapResultSet(&resp, category, c.now()), nil
}

// GetMovie returns the full record for one movie
func (c *Client) GetMovie(ctx context.Context, id int) (*domain.MovieDetails, error) {
	body, err := c.doRequest(ctx, "/movie/"+strconv.Itoa(id), c.localeQuery())
	if err != nil {
		return nil, err
	}

	var resp DetailsDTO
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse movie %d: %w", id, err)
	}

	return MapDetails(&resp), nil
}

// ValidateToken checks the token against the authentication endpoint
func (c *Client) ValidateToken(ctx context.Context) error {
	body, err := c.doRequest(ctx, "/authentication", nil)
	if err != nil {
		return err
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse authentication response: %w", err)
	}
	if !resp.Success {
		return domain.ErrAuthFailed
	}
	return nil
}
