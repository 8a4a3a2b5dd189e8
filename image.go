package speedicon

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for preview files of an unknown type.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// previewExtensions lists the file types a preview can be written as.
var previewExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// encodeImg encodes an image to w in the format matching the file extension.
// JPEG has no alpha channel, so the image is flattened on a white background first.
func encodeImg(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		flat := imaging.Overlay(bg, img, image.Point{}, 1.0)
		return jpeg.Encode(w, flat, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return ErrUnsupportedFormat
	}
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if b.Min.X == 0 && b.Min.Y == 0 {
		if src, ok := img.(*image.NRGBA); ok {
			return src
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
