package sheet

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

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// Client is a typed HTTP client for the project/room/item REST contract. It
// implements Backend for the sheet engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the server envelope.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (http %d): %s", e.Code, e.Status, e.Message)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Proxies answer with HTML error pages, not the envelope.
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response (http %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]entity.Project, error) {
	var result struct {
		Items []entity.Project `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project (questionnaire submission).
func (c *Client) CreateProject(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	var created entity.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject patches project fields.
func (c *Client) UpdateProject(ctx context.Context, id string, fields map[string]interface{}) (*entity.Project, error) {
	var updated entity.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+id, nil, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil, nil)
}

// ListRooms returns a project's rooms.
func (c *Client) ListRooms(ctx context.Context, projectID string) ([]entity.Room, error) {
	var rooms []entity.Room
	q := url.Values{"project_id": {projectID}}
	if err := c.do(ctx, http.MethodGet, "/api/rooms", q, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a room.
func (c *Client) CreateRoom(ctx context.Context, room *entity.Room) (*entity.Room, error) {
	var created entity.Room
	if err := c.do(ctx, http.MethodPost, "/api/rooms", nil, room, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRoom patches room fields.
func (c *Client) UpdateRoom(ctx context.Context, id string, fields map[string]interface{}) (*entity.Room, error) {
	var updated entity.Room
	if err := c.do(ctx, http.MethodPut, "/api/rooms/"+id, nil, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRoom deletes a room; the server cascades to its items.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/rooms/"+id, nil, nil, nil)
}

// ListItems returns a project's items, optionally restricted to a status set
// (sent comma-separated).
func (c *Client) ListItems(ctx context.Context, projectID string, statuses []string) ([]entity.Item, error) {
	var items []entity.Item
	q := url.Values{"project_id": {projectID}}
	if len(statuses) > 0 {
		q.Set("status", strings.Join(statuses, ","))
	}
	if err := c.do(ctx, http.MethodGet, "/api/items", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates one item.
func (c *Client) CreateItem(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var created entity.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateItems bulk-creates items in one request.
func (c *Client) CreateItems(ctx context.Context, items []entity.Item) ([]entity.Item, error) {
	var created []entity.Item
	body := map[string]interface{}{"items": items}
	if err := c.do(ctx, http.MethodPost, "/api/items/bulk", nil, body, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateItem patches item fields.
func (c *Client) UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (*entity.Item, error) {
	var updated entity.Item
	if err := c.do(ctx, http.MethodPut, "/api/items/"+id, nil, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteItem deletes one item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+id, nil, nil, nil)
}
