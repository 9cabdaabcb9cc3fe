package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/you/laborhub/internal/app"
	testconfig "github.com/you/laborhub/internal/tests/config"
)

// TestServer runs the fully wired application on in-memory stores
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	Redis     *miniredis.Miniredis
}

// NewTestServer creates a new test server instance for E2E testing
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := testconfig.LoadTestConfig(t)
	db := testconfig.OpenTestDB(t)
	mr, rdb := testconfig.OpenTestRedis(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	container, err := app.Wire(cfg, logger, db, rdb)
	if err != nil {
		t.Fatalf("Failed to wire application: %v", err)
	}

	server := httptest.NewServer(container.Router())
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		Container: container,
		Redis:     mr,
	}
}

// Client is a browser-like HTTP client: it keeps cookies between requests
type Client struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

// NewClient returns a client with an empty cookie jar
func (s *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &Client{
		t:       t,
		baseURL: s.Server.URL,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// Response is a decoded API response
type Response struct {
	Status  int
	Body    map[string]interface{}
	Cookies []*http.Cookie
}

// Data returns the "data" object of a successful response
func (r *Response) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// Code returns the error code of a failed response
func (r *Response) Code() string {
	code, _ := r.Body["code"].(string)
	return code
}

// Do sends a JSON request. A non-empty bearer is sent as the access token.
func (c *Client) Do(method, path string, body interface{}, bearer string) *Response {
	c.t.Helper()
	return c.DoWithCookie(method, path, body, bearer, nil)
}

// DoWithCookie is Do with an extra cookie added to the request
func (c *Client) DoWithCookie(method, path string, body interface{}, bearer string, cookie *http.Cookie) *Response {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("Failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		c.t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := &Response{Status: resp.StatusCode, Cookies: resp.Cookies()}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("Failed to read response: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Body); err != nil {
			c.t.Fatalf("Failed to decode response %q: %v", raw, err)
		}
	}
	return out
}

// RefreshCookie returns the refresh token cookie set by a response, if any
func (r *Response) RefreshCookie() *http.Cookie {
	for _, c := range r.Cookies {
		if c.Name == "refreshToken" {
			return c
		}
	}
	return nil
}
