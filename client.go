package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	goerrors "github.com/goliatone/go-errors"
)

// Client is the authenticated API surface for application call sites. Every
// request goes through Transport (bearer attachment + retry-once-on-401)
// and every response body is decoded as an Envelope. Expected failures such
// as connectivity problems, malformed envelopes, and non-success responses
// come back as categorized errors, never panics.
type Client struct {
	baseURL    string
	transport  *Transport
	httpClient *http.Client
	logger     Logger
}

// NewClient builds a Client over the manager's authenticated channel, using
// the longer auth timeout from cfg.
func NewClient(cfg Config, manager *Manager) *Client {
	transport := NewTransport(manager)
	return &Client{
		baseURL:   cfg.GetBaseURL(),
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.GetAuthTimeout(),
		},
		logger: defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
		c.transport.WithLogger(logger)
	}
	return c
}

// Transport exposes the underlying interceptor, e.g. to register
// session-expired listeners or swap the base round tripper.
func (c *Client) Transport() *Transport {
	return c.transport
}

// OnSessionExpired registers a listener fired when a request's silent
// refresh fails. The returned function unsubscribes it.
func (c *Client) OnSessionExpired(fn func()) func() {
	return c.transport.OnSessionExpired(fn)
}

// Get issues a GET and decodes the envelope into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](body)
}

// Post issues a POST with a JSON body and decodes the envelope into T.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](body)
}

// Put issues a PUT with a JSON body and decodes the envelope into T.
func Put[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	body, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](body)
}

// Delete issues a DELETE; a nil error means the server confirmed the
// deletion. Delete-style endpoints return no payload, so only the success
// flag and error message of the envelope are consulted.
func (c *Client) Delete(ctx context.Context, path string) error {
	body, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return parseError(bodySnippet(body))
	}
	if !env.Success {
		return serverError(env.Error)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid base URL")
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectivityError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, connectivityError(err)
	}

	return body, nil
}
