// Package apiclient talks to the ReqRes-style user API exercised by the HTTP
// smoke suite.
package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/simplecom/storefront-smoke/internal/config"
	"github.com/simplecom/storefront-smoke/internal/logging"
	"github.com/simplecom/storefront-smoke/internal/rules"
)

const defaultTimeout = 30 * time.Second

// Client handles communication with the user API
type Client interface {
	ListUsers(page int) (*Response[UserList], error)
	GetUnknown(id int) (*Response[json.RawMessage], error)
}

// HTTPClient implements Client using HTTP
type HTTPClient struct {
	config     config.APIConfig
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a new API client
func NewClient(cfg config.APIConfig, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.OrDefault(logger),
	}
}

// Response is a status code plus the decoded body. Body is nil when the
// status was not 200 or the body was empty.
type Response[T any] struct {
	StatusCode int
	Body       *T
	Raw        []byte
}

// User is one entry of a user listing
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// UserList is one page of users
type UserList struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// ListUsers fetches one page of users
func (c *HTTPClient) ListUsers(page int) (*Response[UserList], error) {
	return get[UserList](c, fmt.Sprintf("/users?page=%d", page))
}

// GetUnknown fetches a resource from the "unknown" collection
func (c *HTTPClient) GetUnknown(id int) (*Response[json.RawMessage], error) {
	return get[json.RawMessage](c, fmt.Sprintf("/unknown/%d", id))
}

func get[T any](c *HTTPClient, path string) (*Response[T], error) {
	apiURL := c.endpoint(path)

	// Create HTTP request
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	// Send request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Printf("GET %s returned status %d", apiURL, resp.StatusCode)

	result := &Response[T]{StatusCode: resp.StatusCode, Raw: body}
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		return result, nil
	}

	// Parse response
	var decoded T
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	result.Body = &decoded
	return result, nil
}

// setHeaders adds the API key and, when it is a usable bearer token, the
// Authorization header
func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if key := strings.TrimSpace(c.config.Key); key != "" {
		req.Header.Set("x-api-key", key)
	}
	token := c.config.Token
	if !rules.RequiresAuth(&token) {
		req.Header.Set("Authorization", strings.TrimSpace(token))
	}
}

// endpoint joins the configured base and path
func (c *HTTPClient) endpoint(path string) string {
	return strings.TrimRight(c.config.Base, "/") + path
}
