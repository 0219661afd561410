// Package visualtest compares rendered pages against reference images.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // Max color channel difference found

	// Diff shows matching pixels in grey and differing ones in red. It is
	// only set when CompareOptions.Diff is true.
	Diff *image.RGBA

	// Actual is the render CheckReference compared.
	Actual image.Image
}

// CompareOptions configures the image comparison
type CompareOptions struct {
	// Tolerance is the largest per channel difference (0-255) still
	// counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing small glyph shifts.
	FuzzyRadius int

	// MaxDifferentPercent accepts up to this share of differing pixels.
	MaxDifferentPercent float64

	Diff bool
}

// DefaultOptions returns sensible defaults for image comparison
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareFiles decodes two PNG files and compares them.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := LoadPNG(actualPath)
	if err != nil {
		return nil, err
	}
	expected, err := LoadPNG(expectedPath)
	if err != nil {
		return nil, err
	}
	return Compare(actual, expected, opts)
}

// Compare compares two images pixel by pixel. Images of different size
// never match.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			diff := channelDiff(actual.At(x, y), expected.At(x, y))
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}
			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if same {
					r, _, _, _ := actual.At(x, y).RGBA()
					gray := uint8(r >> 8)
					result.Diff.Set(x, y, color.RGBA{gray, gray, gray, 255})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}
	return result, nil
}

// channelDiff returns the largest 8-bit channel difference of two colours.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return maxInt(
		absInt(int(ar>>8)-int(br>>8)),
		absInt(int(ag>>8)-int(bg>>8)),
		absInt(int(ab>>8)-int(bb>>8)),
		absInt(int(aa>>8)-int(ba>>8)),
	)
}

// fuzzyMatch checks if the actual pixel at (x, y) matches any expected pixel within radius
func fuzzyMatch(actual, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	c := actual.At(x, y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(c, expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(vals ...int) int {
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
