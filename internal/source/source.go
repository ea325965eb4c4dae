// Package source downloads documents to be broken into lines.
package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Document is a fetched body with a filename chosen for parser selection.
type Document struct {
	URL         string
	Filename    string
	ContentType string
	Data        []byte
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Client fetches documents over HTTP.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewClient(timeout time.Duration, maxBytes int64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
}

// Fetch downloads rawURL. Server errors and 429 come back as *RetryableError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "grafbreak/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u.Redacted(), resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", c.maxBytes)
	}

	ct := resp.Header.Get("Content-Type")
	return &Document{
		URL:         u.String(),
		Filename:    Filename(u, ct),
		ContentType: ct,
		Data:        data,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

var extByMediaType = map[string]string{
	"text/html":             ".html",
	"application/xhtml+xml": ".html",
	"text/markdown":         ".md",
	"text/x-markdown":       ".md",
	"text/plain":            ".txt",
	"application/pdf":       ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Filename names a fetched document after its URL path, with an extension
// taken from the content type when the type is known.
func Filename(u *url.URL, contentType string) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		// A host name's dots are not an extension.
		base = strings.ReplaceAll(u.Hostname(), ".", "_")
	}
	ext := strings.ToLower(path.Ext(base))

	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		if want, ok := extByMediaType[mt]; ok {
			if ext == want || (want == ".html" && ext == ".htm") || (want == ".md" && ext == ".markdown") {
				return base
			}
			return strings.TrimSuffix(base, path.Ext(base)) + want
		}
	}
	if ext == "" {
		return base + ".txt"
	}
	return base
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
