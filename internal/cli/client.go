package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/playerregistry/internal/api/apierr"
	"github.com/mcoot/playerregistry/internal/api/request"
	"github.com/mcoot/playerregistry/internal/api/response"
	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
)

// Client is an HTTP client for the player API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RequestError is returned for non-2xx responses
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request, decoding a JSON result when given
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp apierr.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return &RequestError{Status: resp.StatusCode, Code: errResp.Error.Code, Message: errResp.Error.Message}
		}
		return &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (response.Health, error) {
	var h response.Health
	err := c.Do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

// ListPlayers calls GET /players
func (c *Client) ListPlayers(ctx context.Context, criteria query.Criteria, page query.Page) ([]response.Player, error) {
	v := url.Values{}
	request.EncodeCriteria(criteria, v)
	request.EncodePage(page, v)

	var players []response.Player
	if err := c.Do(ctx, http.MethodGet, "/players?"+v.Encode(), nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// CountPlayers calls GET /players/count
func (c *Client) CountPlayers(ctx context.Context, criteria query.Criteria) (int, error) {
	v := url.Values{}
	request.EncodeCriteria(criteria, v)

	path := "/players/count"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var n int
	err := c.Do(ctx, http.MethodGet, path, nil, &n)
	return n, err
}

// GetPlayer calls GET /players/{id}
func (c *Client) GetPlayer(ctx context.Context, id model.PlayerID) (response.Player, error) {
	var p response.Player
	err := c.Do(ctx, http.MethodGet, playerPath(id), nil, &p)
	return p, err
}

// CreatePlayer calls POST /players
func (c *Client) CreatePlayer(ctx context.Context, body request.PlayerBody) (response.Player, error) {
	var p response.Player
	err := c.Do(ctx, http.MethodPost, "/players", body, &p)
	return p, err
}

// UpdatePlayer calls POST /players/{id}
func (c *Client) UpdatePlayer(ctx context.Context, id model.PlayerID, body request.PlayerBody) (response.Player, error) {
	var p response.Player
	err := c.Do(ctx, http.MethodPost, playerPath(id), body, &p)
	return p, err
}

// DeletePlayer calls DELETE /players/{id}
func (c *Client) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return c.Do(ctx, http.MethodDelete, playerPath(id), nil, nil)
}

// Create lets the client act as a seed.Creator against a remote server
func (c *Client) Create(ctx context.Context, patch model.PlayerPatch) (*model.Player, error) {
	p, err := c.CreatePlayer(ctx, request.PlayerBodyFromPatch(patch))
	if err != nil {
		return nil, err
	}
	return toModel(p), nil
}

func toModel(p response.Player) *model.Player {
	return &model.Player{
		ID:             model.PlayerID(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           model.Race(p.Race),
		Profession:     model.Profession(p.Profession),
		Birthday:       p.BirthdayTime(),
		Banned:         p.Banned,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
	}
}

func playerPath(id model.PlayerID) string {
	return fmt.Sprintf("/players/%d", id)
}
