// Package resource loads documents and the stylesheets they link to, from
// local files or over HTTP.
package resource

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "rtable/1.0 (compatible; Go)"

// httpClient is a shared HTTP client with reasonable timeouts.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher reads files and fetches HTTP/HTTPS URLs, resolving
// relative URIs against a base location.
type DefaultFetcher struct {
	base string
}

// NewFetcher creates a DefaultFetcher with the given base, a URL or a file
// path. Relative URIs passed to Fetch will be resolved against this base.
func NewFetcher(base string) *DefaultFetcher {
	return &DefaultFetcher{base: base}
}

// Fetch retrieves the resource at the given URI.
// Relative URIs are resolved against the fetcher's base.
func (f *DefaultFetcher) Fetch(uri string) ([]byte, string, error) {
	return fetch(f.Resolve(uri))
}

// Document retrieves the base itself.
func (f *DefaultFetcher) Document() ([]byte, string, error) {
	return fetch(strings.TrimPrefix(f.base, "file://"))
}

func fetch(resolved string) ([]byte, string, error) {
	if IsNetworkURL(resolved) {
		return fetchURL(resolved)
	}
	body, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", err
	}
	return body, mime.TypeByExtension(filepath.Ext(resolved)), nil
}

// Resolve returns the location uri refers to.
func (f *DefaultFetcher) Resolve(uri string) string {
	if IsNetworkURL(uri) || f.base == "" {
		return strings.TrimPrefix(uri, "file://")
	}
	if IsNetworkURL(f.base) {
		return ResolveURL(f.base, uri)
	}
	path := filepath.FromSlash(strings.TrimPrefix(uri, "file://"))
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(strings.TrimPrefix(f.base, "file://")), path)
}

// FetchCSS fetches a stylesheet URI through f and returns its text content.
// Returns an error if the content type does not look like CSS or text.
func FetchCSS(f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}

func fetchURL(rawURL string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// ResolveURL resolves a possibly-relative URI against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
