// Package client is a typed Go binding of the HTTP API. Every call is driven by
// the route registry: inputs are validated before they are sent and response
// bodies are checked against the declared schema of their status.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/schema"
)

// Error is returned for any failed call. Error() is the generic text of the
// operation; Message carries the server's explanation when there is one.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Status == status
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithToken authenticates requests with a Bearer token, e.g. one saved by a previous login.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client. Its cookie jar is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 15 * time.Second},
		cache:   newCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the session token of the last login or registration.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type call struct {
	op     string
	route  contract.Route
	params map[string]any
	input  any
}

// key identifies a read in the cache.
func (cl call) key() string {
	key := cl.route.URL(cl.params)
	if q, ok := cl.input.(schema.QueryInput); ok {
		if enc := q.EncodeQuery().Encode(); enc != "" {
			key += "?" + enc
		}
	}
	return key
}

// do performs the call and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) (int, []byte, error) {
	fail := func(status int, msg string, err error) (int, []byte, error) {
		return status, nil, &Error{Op: cl.op, Status: status, Message: msg, Err: err}
	}

	var body io.Reader
	if cl.input != nil {
		err := schema.Validate(cl.input)
		if err != nil {
			return fail(0, err.Error(), err)
		}
		if _, ok := cl.input.(schema.QueryInput); !ok {
			data, err := json.Marshal(cl.input)
			if err != nil {
				return fail(0, "", err)
			}
			body = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, cl.route.Method, c.baseURL+cl.key(), body)
	if err != nil {
		return fail(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", err)
	}

	err = cl.route.ValidateResponse(ctx, resp.StatusCode, data)
	if err != nil {
		return fail(resp.StatusCode, "", err)
	}

	if resp.StatusCode >= 300 {
		var e schema.ValidationError
		_ = json.Unmarshal(data, &e)
		return fail(resp.StatusCode, e.Message, nil)
	}

	return resp.StatusCode, data, nil
}

// fetch runs a cached read and decodes the body into out.
func (c *Client) fetch(ctx context.Context, cl call, out any) error {
	data, err := c.cache.get(cl.key(), func() ([]byte, error) {
		_, data, err := c.do(ctx, cl)
		return data, err
	})
	if err != nil {
		return err
	}
	return c.decode(cl, data, out)
}

// mutate runs a write, decodes the body into out and drops the cached reads
// under invalidates, or every cached read when none are given.
func (c *Client) mutate(ctx context.Context, cl call, out any, invalidates ...string) error {
	_, data, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	c.cache.invalidate(invalidates...)

	if out == nil || len(data) == 0 {
		return nil
	}
	return c.decode(cl, data, out)
}

func (c *Client) decode(cl call, data []byte, out any) error {
	err := json.Unmarshal(data, out)
	if err != nil {
		return &Error{Op: cl.op, Message: "unexpected response", Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
