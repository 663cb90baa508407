package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/game/service"
)

// Client plays one session through the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID is the session the client is playing
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) CreateSession(configID string) (*engine.GameState, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var session service.SessionInfo
	if err := c.do(http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

// Resume points the client at an existing session and fetches its state
func (c *Client) Resume(sessionID string) (*engine.GameState, error) {
	c.sessionID = sessionID
	return c.GetState()
}

func (c *Client) GetState() (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(http.MethodGet, c.sessionPath("state"), nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) Move(direction engine.Direction) (*service.MoveResult, error) {
	req := map[string]string{"direction": string(direction)}

	var result service.MoveResult
	if err := c.do(http.MethodPost, c.sessionPath("move"), req, &result); err != nil {
		return nil, fmt.Errorf("move %s: %w", direction, err)
	}
	return &result, nil
}

func (c *Client) BulkMove(directions []engine.Direction) (*service.BulkMoveResult, error) {
	moves := make([]string, 0, len(directions))
	for _, d := range directions {
		moves = append(moves, string(d))
	}

	var result service.BulkMoveResult
	if err := c.do(http.MethodPost, c.sessionPath("bulk-move"), map[string][]string{"moves": moves}, &result); err != nil {
		return nil, fmt.Errorf("bulk move: %w", err)
	}
	return &result, nil
}

type newGameResponse struct {
	Message string            `json:"message"`
	State   *engine.GameState `json:"state"`
}

// NewGame starts a new round in the current session
func (c *Client) NewGame() (*engine.GameState, error) {
	var resp newGameResponse
	if err := c.do(http.MethodPost, c.sessionPath("new-game"), nil, &resp); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return resp.State, nil
}

func (c *Client) sessionPath(action string) string {
	return fmt.Sprintf("/api/sessions/%s/%s", url.PathEscape(c.sessionID), action)
}

// do sends body as JSON and decodes a 2xx answer into result. Other
// statuses become errors carrying the server's error message.
func (c *Client) do(method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s: %s", resp.Status, string(data))
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
