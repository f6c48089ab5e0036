package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Repository defines methods for accessing users on the remote API.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, d Draft) error
	Update(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type httpRepository struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRepository creates a Repository backed by the REST API at baseURL.
// A nil client falls back to http.DefaultClient.
func NewHTTPRepository(baseURL string, client *http.Client) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (r *httpRepository) List(ctx context.Context) ([]User, error) {
	// Records are decoded one by one so a malformed entry cannot fail the list.
	var records []json.RawMessage
	if err := r.do(ctx, http.MethodGet, "/users", nil, &records); err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}

	users := make([]User, len(records))
	for i, rec := range records {
		_ = users[i].UnmarshalJSON(rec)
	}
	return users, nil
}

func (r *httpRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, fmt.Errorf("get user %q failed: %w", id, err)
	}
	return &u, nil
}

func (r *httpRepository) Create(ctx context.Context, d Draft) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft failed: %w", err)
	}

	// The mock API echoes an id it never persists, so the response is discarded.
	if err := r.do(ctx, http.MethodPost, "/users", body, nil); err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *httpRepository) Update(ctx context.Context, id int) error {
	if err := r.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return fmt.Errorf("update user %d failed: %w", id, err)
	}
	return nil
}

func (r *httpRepository) Delete(ctx context.Context, id int) error {
	if err := r.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete user %d failed: %w", id, err)
	}
	return nil
}

// do issues one request. A nil body sends no payload; a nil out skips decoding.
func (r *httpRepository) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned %s", ErrRemoteFailed, method, path, resp.Status)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRemoteFailed, err)
	}
	return nil
}
