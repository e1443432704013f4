package scheme

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Source defines where the scheme dataset is read from
type Source interface {
	// Name returns a human readable location for logs and errors
	Name() string

	// Open returns a reader over the raw dataset
	Open(ctx context.Context) (io.ReadCloser, error)
}

// NewSource picks a source implementation for the given location
func NewSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("dataset location is empty")
	}

	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location), nil
	}

	return NewFileSource(location)
}

// FileSource reads the dataset from a local file
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource, expanding a leading ~
func NewFileSource(path string) (*FileSource, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to expand dataset path: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &FileSource{path: path}, nil
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.path
}

// Open opens the dataset file
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return f, nil
}

// HTTPSource fetches the dataset over HTTP.
// The client carries no timeout; cancellation comes from the context.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTPSource for the given URL
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{},
	}
}

// Name returns the URL
func (s *HTTPSource) Name() string {
	return s.url
}

// Open issues the GET request and returns the response body
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("dataset request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp.Body, nil
}
