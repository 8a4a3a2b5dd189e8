package speedicon

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ResourcesDir is the directory the generated assets are written to.
const ResourcesDir = "Resources"

var (
	// DefaultIconPath is the multi-resolution icon written by both generators.
	DefaultIconPath = filepath.Join(ResourcesDir, "app.ico")
	// DefaultPreviewPath is the single-resolution preview written by the drawer.
	DefaultPreviewPath = filepath.Join(ResourcesDir, "app.png")
	// DefaultSVGPath is the vector source read by the converter.
	DefaultSVGPath = filepath.Join(ResourcesDir, "speedometer_icon.svg")
)

// DefaultSizes lists the sizes drawn by the procedural drawer, largest first.
var DefaultSizes = []int{256, 128, 64, 48, 32, 16}

// ConverterSizes lists the sizes rasterized by the converter.
var ConverterSizes = []int{16, 32, 48, 64, 128, 256}

// MaxIconSize is the largest dimension an ICO directory entry can describe.
const MaxIconSize = 256

// ParseSizes parses a comma separated list of icon sizes, e.g. "256,128,64".
// The sizes must be unique and fall in the [1, MaxIconSize] range.
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	seen := make(map[int]bool)

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		field = strings.TrimSuffix(strings.ToLower(field), "px")
		size, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid icon size %q", field)
		}
		if size < 1 || size > MaxIconSize {
			return nil, fmt.Errorf("%w: %d", ErrSizeOutOfRange, size)
		}
		if seen[size] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSize, size)
		}
		seen[size] = true
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no icon size provided")
	}
	return sizes, nil
}
