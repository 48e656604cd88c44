// Package remote talks to the read-only collaborators of the dashboard:
// a JSON resource provider for users, posts and todos, and a weather lookup.
package remote

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

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/stickyboard/pkg/core"
)

// DefaultBaseURL is the public demo API the dashboard reads from.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client reads users, posts and todos. It does not retry.
type Client struct {
	baseURL string
	http    *http.Client
	timeout *time.Duration
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero disables the bound. It applies to
// whichever *http.Client the client ends up with, without mutating it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c
}

// Users lists every user.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.get(ctx, "users", "/users", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Posts lists every post.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, "posts", "/posts", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Todos lists every todo.
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var out []Todo
	if err := c.get(ctx, "todos", "/todos", &out); err != nil {
		return out, err
	}
	return out, nil
}

// User fetches a single user.
func (c *Client) User(ctx context.Context, id int) (User, error) {
	var out User
	if err := c.get(ctx, "user", "/users/"+strconv.Itoa(id), &out); err != nil {
		return out, err
	}
	return out, nil
}

// UserPosts lists the posts of one user.
func (c *Client) UserPosts(ctx context.Context, id int) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, "user posts", "/users/"+strconv.Itoa(id)+"/posts", &out); err != nil {
		return out, err
	}
	return out, nil
}

// UserTodos lists the todos of one user.
func (c *Client) UserTodos(ctx context.Context, id int) ([]Todo, error) {
	var out []Todo
	if err := c.get(ctx, "user todos", "/users/"+strconv.Itoa(id)+"/todos", &out); err != nil {
		return out, err
	}
	return out, nil
}

// Snapshot fetches users, posts and todos concurrently.
// The first failure cancels the remaining requests.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Users, err = c.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Posts, err = c.Posts(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Todos, err = c.Todos(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) get(ctx context.Context, resource, path string, dst any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return &core.FetchError{Resource: resource, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &core.FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &core.FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("remote fetch", "resource", resource, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &core.FetchError{Resource: resource, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &core.FetchError{Resource: resource, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
