package speedicon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/speedometer/speedicon/utils"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
)

// ErrSourceNotFound is returned when the image to convert does not exist.
// It matches fs.ErrNotExist as well.
var ErrSourceNotFound = fmt.Errorf("source file not found: %w", fs.ErrNotExist)

// Converter rasterizes an existing image, usually an SVG, at several sizes.
type Converter struct {
	// Sizes lists the sizes to rasterize, ConverterSizes if empty.
	Sizes []int
	// KeepAspect fits non square sources into the icon, centered on a transparent
	// background, instead of stretching them.
	KeepAspect bool
	Logger     *slog.Logger
}

// NewConverter returns a converter producing the standard desktop icon sizes.
func NewConverter() *Converter {
	return &Converter{Sizes: ConverterSizes}
}

// source is an image that can be rendered at any square size.
type source interface {
	render(size int, keepAspect bool) *image.NRGBA
	kind() string
}

// Convert rasterizes the image at src, a file path or an http(s) URL, at every size.
func (c *Converter) Convert(src string) (*Bundle, error) {
	return c.convert(src, c.sizes(), nil)
}

// ConvertFile converts src and writes the resulting icon bundle to dst.
// The destination is left untouched if the conversion fails.
func (c *Converter) ConvertFile(src, dst string) (*Bundle, error) {
	b, err := c.Convert(src)
	if err != nil {
		return nil, err
	}
	if err := b.WriteFile(dst); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Converter) sizes() []int {
	if len(c.Sizes) == 0 {
		return ConverterSizes
	}
	return c.Sizes
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

// convert renders the source at every size, calling onSize before each one.
func (c *Converter) convert(src string, sizes []int, onSize func(int)) (*Bundle, error) {
	s, err := c.open(src)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("source loaded", slog.String("path", src), slog.String("kind", s.kind()))

	b := &Bundle{}
	for _, size := range sizes {
		if onSize != nil {
			onSize(size)
		}
		if size < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
		if err := b.Add(s.render(size, c.KeepAspect)); err != nil {
			return nil, err
		}
		c.logger().Debug("icon rasterized", slog.Int("size", size))
	}
	return b, nil
}

// open loads the source image, downloading it first if src is an URL.
func (c *Converter) open(src string) (source, error) {
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadFile(src)
		if err != nil {
			return nil, err
		}
		defer os.Remove(f.Name())
		f.Close()

		c.logger().Debug("source downloaded", slog.String("url", src), slog.String("tmp", f.Name()))
		return loadSource(f.Name())
	}
	return loadSource(src)
}

// loadSource decodes the file at path either as an SVG document or as a raster image.
func loadSource(path string) (source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("source %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, err
	}

	if isSVG(path, ctype, data) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("could not parse the SVG file: %w", err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return nil, fmt.Errorf("the SVG file %s has no usable dimensions", path)
		}
		return &vectorSource{icon: icon}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image (%s): %w", ctype, err)
	}
	return &rasterSource{img: img, format: format}, nil
}

// isSVG tells an SVG document apart from a raster image, either by its extension
// or, for textual content, by the presence of an svg element.
func isSVG(path, ctype string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	if !strings.HasPrefix(ctype, "text/") {
		return false
	}
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// fit returns the largest w×h rectangle with the given aspect ratio fitting in a
// size×size square, along with its offset to center it there.
func fit(size int, srcW, srcH float64) (x, y, w, h float64) {
	w, h = float64(size), float64(size)
	if srcW > srcH {
		h = float64(size) * srcH / srcW
	} else if srcH > srcW {
		w = float64(size) * srcW / srcH
	}
	return (float64(size) - w) / 2, (float64(size) - h) / 2, w, h
}

type vectorSource struct {
	icon *oksvg.SvgIcon
}

func (v *vectorSource) kind() string { return "svg" }

func (v *vectorSource) render(size int, keepAspect bool) *image.NRGBA {
	x, y, w, h := 0.0, 0.0, float64(size), float64(size)
	if keepAspect {
		x, y, w, h = fit(size, v.icon.ViewBox.W, v.icon.ViewBox.H)
	}
	v.icon.SetTarget(x, y, w, h)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	v.icon.Draw(raster, 1.0)

	return imaging.Clone(img)
}

type rasterSource struct {
	img    image.Image
	format string
}

func (r *rasterSource) kind() string { return r.format }

func (r *rasterSource) render(size int, keepAspect bool) *image.NRGBA {
	if !keepAspect {
		return imaging.Resize(r.img, size, size, imaging.Lanczos)
	}
	b := r.img.Bounds()
	_, _, w, h := fit(size, float64(b.Dx()), float64(b.Dy()))

	dw, dh := utils.Clamp(int(w+0.5), 1, size), utils.Clamp(int(h+0.5), 1, size)
	resized := imaging.Resize(r.img, dw, dh, imaging.Lanczos)

	dst := imaging.New(size, size, color.NRGBA{})
	return imaging.Paste(dst, resized, image.Pt((size-dw)/2, (size-dh)/2))
}
