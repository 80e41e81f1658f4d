package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"chessgrid/internal/client/display"
	"chessgrid/internal/core"

	"github.com/pkg/errors"
)

// Error is a non-2xx reply decoded from the server's error body
type Error struct {
	Status  int
	Message string
	Code    string
	Details string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// IsCode reports whether err carries an API error with the given code
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer // request trace, os.Stdout by default
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-poll requests hold for up to 25s
			Timeout: 30 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(u string) {
	c.BaseURL = strings.TrimRight(u, "/")
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		bodyReader = bytes.NewReader(data)
		if c.Verbose {
			fmt.Fprintf(c.Out, "%s%s%s\n", display.Blue, data, display.Reset)
		}
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.Verbose {
		fmt.Fprintf(c.Out, "%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s", method, path)
	}

	if c.Verbose {
		statusColor := display.Green
		if resp.StatusCode >= 400 {
			statusColor = display.Red
		}
		fmt.Fprintf(c.Out, "%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)
		if len(respBody) > 0 {
			display.PrettyPrintJSON(c.Out, json.RawMessage(respBody))
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp core.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Code != "" {
			apiErr.Message = errResp.Error
			apiErr.Code = errResp.Code
			apiErr.Details = errResp.Details
		}
		return errors.WithMessagef(apiErr, "%s %s", method, path)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrapf(err, "decode %s %s", method, path)
		}
	}

	return nil
}

func gamePath(gameID string, parts ...string) string {
	p := "/api/v1/games/" + url.PathEscape(gameID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// API Methods

func (c *Client) Health() (*core.HealthResponse, error) {
	var resp core.HealthResponse
	err := c.doRequest(http.MethodGet, "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(fen string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, "/api/v1/games", &core.CreateGameRequest{FEN: fen}, &resp)
	return &resp, err
}

func (c *Client) ListGames() (*core.GameListResponse, error) {
	var resp core.GameListResponse
	err := c.doRequest(http.MethodGet, "/api/v1/games", nil, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodGet, gamePath(gameID), nil, &resp)
	return &resp, err
}

// WaitForGame long-polls until the game's version differs from version or
// the server-side wait expires
func (c *Client) WaitForGame(gameID string, version int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("%s?wait=true&version=%d", gamePath(gameID), version)
	err := c.doRequest(http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest(http.MethodDelete, gamePath(gameID), nil, nil)
}

func (c *Client) MakeMove(gameID, from, to string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, gamePath(gameID, "moves"), &core.MoveRequest{From: from, To: to}, &resp)
	return &resp, err
}

func (c *Client) ResetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, gamePath(gameID, "reset"), nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest(http.MethodGet, gamePath(gameID, "board"), nil, &resp)
	return &resp, err
}

func (c *Client) GetStatus(gameID string) (*core.PlayersStatus, error) {
	var resp core.PlayersStatus
	err := c.doRequest(http.MethodGet, gamePath(gameID, "status"), nil, &resp)
	return &resp, err
}

func (c *Client) PossibleMoves(gameID, square string) (*core.PossibleMovesResponse, error) {
	var resp core.PossibleMovesResponse
	err := c.doRequest(http.MethodGet, gamePath(gameID, "squares", url.PathEscape(square), "moves"), nil, &resp)
	return &resp, err
}
