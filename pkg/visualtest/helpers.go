package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"rtable/pkg/page"
	"rtable/pkg/resource"
)

// RenderFile loads the HTML document at location, a file path or an HTTP
// URL, at the given viewport width and renders its tables. Linked
// stylesheets are resolved against location.
func RenderFile(location string, width, height int, opts ...page.Option) (image.Image, error) {
	fetcher := resource.NewFetcher(location)
	src, _, err := fetcher.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	opts = append([]page.Option{page.WithFetcher(fetcher)}, opts...)
	p, err := page.Load(string(src), float64(width), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", location, err)
	}
	return p.Render(height), nil
}

// CheckReference renders location and compares it with the PNG at
// referencePath. The render is returned in CompareResult.Actual.
func CheckReference(location, referencePath string, width, height int, cmp CompareOptions, opts ...page.Option) (*CompareResult, error) {
	actual, err := RenderFile(location, width, height, opts...)
	if err != nil {
		return nil, err
	}
	expected, err := LoadPNG(referencePath)
	if err != nil {
		return nil, err
	}
	result, err := Compare(actual, expected, cmp)
	if result != nil {
		result.Actual = actual
	}
	return result, err
}

// UpdateReferenceImage generates a new reference image
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(location, referencePath string, width, height int, opts ...page.Option) error {
	img, err := RenderFile(location, width, height, opts...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(referencePath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return SavePNG(img, referencePath)
}
