// Package api is the REST data-access layer: one resource client per backend
// surface, all funnelled through a shared request core that injects the bearer
// token and the branch_id tenant scope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"qrdine/internal/session"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, sess *session.Session, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		session: sess,
		log:     log,
	}
}

// scoped appends branch_id to the query when a branch is selected. No branch
// selected means "all branches combined" and the parameter is omitted
// entirely.
func (c *Client) scoped(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if branch := c.session.BranchID(); branch != 0 {
		q.Set("branch_id", strconv.FormatUint(uint64(branch), 10))
	}
	return q
}

// do executes one request. Mutations are pessimistic: callers update local
// state only after this returns nil. There is no retry path; every failure is
// terminal for the action that issued it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	// A 401/403 is fatal only for calls that carried the bearer token. A
	// rejected login or register is an ordinary validation failure and its
	// server message must survive.
	if token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		c.log.Warn("session rejected, logging out", zap.Int("status", resp.StatusCode), zap.String("path", path))
		c.session.Logout()
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// serverMessage pulls the backend's message field out of an error body,
// falling back to the raw body so validation and business-rule failures
// surface verbatim.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}
