package project

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

	"github.com/piwi3910/RackPlanner/internal/model"
)

// StatusResponse is the body the layout server returns for writes and
// for every error.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HTTPStore talks to a layout server. It satisfies the same contract as
// FileStore.
type HTTPStore struct {
	base   string
	client *http.Client
}

// NewHTTPStore returns a store for the server at baseURL. A nil client
// gets a default one with a 10 second timeout.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPStore{base: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.base+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach layout server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	var status StatusResponse
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(data, &status) == nil && status.Message != "" {
		msg = status.Message
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, msg)
	}
	return nil, fmt.Errorf("layout server returned %d: %s", resp.StatusCode, msg)
}

func layoutPath(route, name string) string {
	return "/" + route + "/" + url.PathEscape(name)
}

// List returns the layout names the server knows about.
func (s *HTTPStore) List(ctx context.Context) ([]string, error) {
	data, err := s.do(ctx, http.MethodGet, "/api/layouts", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse layout list: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Save uploads racks under name.
func (s *HTTPStore) Save(ctx context.Context, name string, racks []model.Rack) error {
	body, err := EncodeLayout(racks)
	if err != nil {
		return err
	}
	_, err = s.do(ctx, http.MethodPost, layoutPath("save_layout", name), body)
	return err
}

// Load downloads the named layout.
func (s *HTTPStore) Load(ctx context.Context, name string) ([]model.Rack, error) {
	data, err := s.do(ctx, http.MethodGet, layoutPath("load_layout", name), nil)
	if err != nil {
		return nil, err
	}
	return DecodeLayout(data)
}

// Delete removes the named layout on the server.
func (s *HTTPStore) Delete(ctx context.Context, name string) error {
	_, err := s.do(ctx, http.MethodDelete, layoutPath("delete_layout", name), nil)
	return err
}
