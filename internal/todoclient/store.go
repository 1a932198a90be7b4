package todoclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Store is the remote collection a TodoClient mirrors.
type Store interface {
	List(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, task string) error
	Toggle(ctx context.Context, id ID) error
	Delete(ctx context.Context, id ID) error
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// ErrListTooLarge is returned by List when the response exceeds maxListBytes.
var ErrListTooLarge = errors.New("todo list too large")

const todosPath = "/api/todos"

// maxListBytes bounds how much of a list response is read.
const maxListBytes = 8 << 20

// HTTPStore talks to a todo API over JSON/HTTP. It sends no authentication,
// pagination or conditional headers.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

type StoreOption func(*HTTPStore)

func WithHTTPClient(httpClient *http.Client) StoreOption {
	return func(s *HTTPStore) { s.httpClient = httpClient }
}

func NewHTTPStore(baseURL string, opts ...StoreOption) *HTTPStore {
	s := &HTTPStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPStore) List(ctx context.Context) ([]Todo, error) {
	res, err := s.do(ctx, http.MethodGet, todosPath, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxListBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read todo list: %w", err)
	}

	if len(payload) > maxListBytes {
		return nil, ErrListTooLarge
	}

	return decodeTodos(payload)
}

type createRequest struct {
	Task string `json:"task"`
}

func (s *HTTPStore) Create(ctx context.Context, task string) error {
	payload, err := json.Marshal(createRequest{Task: task})
	if err != nil {
		return fmt.Errorf("failed to encode create request: %w", err)
	}

	res, err := s.do(ctx, http.MethodPost, todosPath, payload)
	if err != nil {
		return err
	}
	discard(res)
	return nil
}

func (s *HTTPStore) Toggle(ctx context.Context, id ID) error {
	res, err := s.do(ctx, http.MethodPut, todoPath(id), nil)
	if err != nil {
		return err
	}
	discard(res)
	return nil
}

func (s *HTTPStore) Delete(ctx context.Context, id ID) error {
	res, err := s.do(ctx, http.MethodDelete, todoPath(id), nil)
	if err != nil {
		return err
	}
	discard(res)
	return nil
}

// do sends one request and returns the response only when it is 2xx.
func (s *HTTPStore) do(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to new http %s request with context: %w", strings.ToLower(method), err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send http %s request: %w", strings.ToLower(method), err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		discard(res)
		return nil, &StatusError{Method: method, Path: path, StatusCode: res.StatusCode}
	}

	return res, nil
}

func todoPath(id ID) string {
	return todosPath + "/" + url.PathEscape(string(id))
}

// discard drains the body so the connection can be reused. Success is
// decided by the status code alone.
func discard(res *http.Response) {
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
}
