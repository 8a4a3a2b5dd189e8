package speedicon

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/speedometer/speedicon/utils"
)

var (
	// ErrDuplicateSize is returned when a bundle already holds an image of the same size.
	ErrDuplicateSize = errors.New("duplicate icon size")
	// ErrNotSquare is returned for images whose width and height differ.
	ErrNotSquare = errors.New("icon image is not square")
	// ErrSizeOutOfRange is returned for images an ICO directory can't describe.
	ErrSizeOutOfRange = errors.New("icon size out of range")
	// ErrEmptyBundle is returned when exporting a bundle without images.
	ErrEmptyBundle = errors.New("icon bundle is empty")
)

// Bundle is an ordered collection of square icon images of distinct sizes,
// exported as a single multi-resolution ICO file.
type Bundle struct {
	images []image.Image
}

// NewBundle creates a bundle holding the images in the given order.
// Every image violating the bundle invariants is reported in the returned error.
func NewBundle(images ...image.Image) (*Bundle, error) {
	b := &Bundle{}
	var result error
	for _, img := range images {
		if err := b.Add(img); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil {
		return nil, result
	}
	return b, nil
}

// Add appends an image to the bundle.
func (b *Bundle) Add(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrSizeOutOfRange)
	}
	size := img.Bounds().Size()
	if size.X != size.Y {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, size.X, size.Y)
	}
	if size.X < 1 || size.X > MaxIconSize {
		return fmt.Errorf("%w: %s", ErrSizeOutOfRange, utils.FormatSize(size.X))
	}
	if _, ok := b.Image(size.X); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSize, utils.FormatSize(size.X))
	}
	b.images = append(b.images, img)
	return nil
}

// Len returns the number of images in the bundle.
func (b *Bundle) Len() int {
	return len(b.images)
}

// Sizes returns the image sizes in bundle order.
func (b *Bundle) Sizes() []int {
	sizes := make([]int, len(b.images))
	for i, img := range b.images {
		sizes[i] = img.Bounds().Dx()
	}
	return sizes
}

// Images returns the images in bundle order.
func (b *Bundle) Images() []image.Image {
	return append([]image.Image(nil), b.images...)
}

// Image returns the image of the requested size.
func (b *Bundle) Image(size int) (image.Image, bool) {
	for _, img := range b.images {
		if img.Bounds().Dx() == size {
			return img, true
		}
	}
	return nil, false
}

// Largest returns the biggest image of the bundle, or nil if the bundle is empty.
func (b *Bundle) Largest() image.Image {
	var largest image.Image
	for _, img := range b.images {
		if largest == nil || img.Bounds().Dx() > largest.Bounds().Dx() {
			largest = img
		}
	}
	return largest
}

// Verify checks that the bundle holds exactly the requested sizes.
// All the missing and unexpected sizes are listed in the returned error.
func (b *Bundle) Verify(sizes []int) error {
	var result error

	requested := make(map[int]bool, len(sizes))
	for _, s := range sizes {
		requested[s] = true
		if _, ok := b.Image(s); !ok {
			result = multierror.Append(result, fmt.Errorf("missing icon size %s", utils.FormatSize(s)))
		}
	}
	for _, s := range b.Sizes() {
		if !requested[s] {
			result = multierror.Append(result, fmt.Errorf("unexpected icon size %s", utils.FormatSize(s)))
		}
	}
	return result
}

// Encode writes every image of the bundle, in bundle order, to w in ICO format.
func (b *Bundle) Encode(w io.Writer) error {
	if len(b.images) == 0 {
		return ErrEmptyBundle
	}
	if err := ico.EncodeAll(w, b.Images()); err != nil {
		return fmt.Errorf("could not encode the icon bundle: %w", err)
	}
	return nil
}

// WriteFile writes the bundle to the ICO file at path, creating the parent
// directories if necessary. An existing file is replaced only once the new
// content has been completely written.
func (b *Bundle) WriteFile(path string) error {
	if len(b.images) == 0 {
		return ErrEmptyBundle
	}
	return writeFileAtomic(path, b.Encode)
}

// WritePreview writes the largest image of the bundle as a single resolution
// image. The format is chosen by the file extension: PNG, JPEG or BMP.
func (b *Bundle) WritePreview(path string) error {
	img := b.Largest()
	if img == nil {
		return ErrEmptyBundle
	}
	ext := filepath.Ext(path)
	if !isValidExtension(ext, previewExtensions) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		return encodeImg(w, ext, img)
	})
}

// DecodeBundle reads all the images stored in an ICO stream.
func DecodeBundle(r io.Reader) (*Bundle, error) {
	images, err := ico.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the icon bundle: %w", err)
	}
	for i, img := range images {
		images[i] = imgToNRGBA(img)
	}
	return NewBundle(images...)
}

// ReadBundle opens and decodes the ICO file at path.
func ReadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeBundle(f)
}

// writeFileAtomic writes the output of encode into a temporary file placed next
// to path, then renames it over path.
func writeFileAtomic(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	// Remove is a no-op once the file has been renamed.
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
