package session

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// TokenRefresher is the slice of Manager the transport depends on.
type TokenRefresher interface {
	AccessToken() string
	Refresh(ctx context.Context) (string, error)
}

// Transport is an http.RoundTripper that attaches the current bearer token
// to every outgoing request and, on a 401, silently refreshes and resends a
// clone exactly once. A second 401 is returned to the caller as-is, which
// bounds retries to one per original request no matter how many times the
// backend rejects.
//
// When the refresh itself fails the transport notifies session-expired
// listeners (synchronously, in registration order) and hands back the
// original 401 untouched.
type Transport struct {
	base      http.RoundTripper
	refresher TokenRefresher
	logger    Logger

	mu        sync.Mutex
	listeners []expiryListener
	nextID    int
}

type expiryListener struct {
	id int
	fn func()
}

var _ http.RoundTripper = (*Transport)(nil)

func NewTransport(refresher TokenRefresher) *Transport {
	return &Transport{
		base:      http.DefaultTransport,
		refresher: refresher,
		logger:    defLogger{},
	}
}

func (t *Transport) WithBase(base http.RoundTripper) *Transport {
	if base != nil {
		t.base = base
	}
	return t
}

func (t *Transport) WithLogger(logger Logger) *Transport {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// OnSessionExpired registers a listener fired when an in-flight request's
// refresh attempt fails. The returned function unsubscribes it.
func (t *Transport) OnSessionExpired(fn func()) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, expiryListener{id: id, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// request bodies are single-use streams; capture the bytes up front so
	// the retry can reattach them without re-reading a consumed source
	body, hasBody, err := captureBody(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to buffer request body")
	}

	res, err := t.send(req, body, hasBody, t.refresher.AccessToken())
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusUnauthorized {
		return res, nil
	}

	newToken, refreshErr := t.refresher.Refresh(req.Context())
	if refreshErr != nil || newToken == "" {
		t.logger.Info("silent refresh failed, session expired")
		t.notifyExpired()
		return res, nil
	}

	drain(res)

	retry, err := t.send(req, body, hasBody, newToken)
	if err != nil {
		return nil, err
	}

	return retry, nil
}

// send issues a clone of req with the given bearer token. The caller's
// request is never mutated, per the RoundTripper contract.
func (t *Transport) send(req *http.Request, body []byte, hasBody bool, token string) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if hasBody {
		clone.Body = io.NopCloser(bytes.NewReader(body))
		clone.ContentLength = int64(len(body))
		clone.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	} else {
		clone.Body = nil
		clone.GetBody = nil
	}

	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}

	return t.base.RoundTrip(clone)
}

func (t *Transport) notifyExpired() {
	t.mu.Lock()
	listeners := make([]func(), 0, len(t.listeners))
	for _, l := range t.listeners {
		listeners = append(listeners, l.fn)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func captureBody(req *http.Request) ([]byte, bool, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, false, nil
	}

	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

func drain(res *http.Response) {
	io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	res.Body.Close()
}
