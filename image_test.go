package speedicon

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9

	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "RGBA",
			img:  makeRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := imgToNRGBA(tc.img)
			assert.Equal(t, image.Rect(0, 0, rect.Dx(), rect.Dy()), dst.Bounds())

			r := tc.img.Bounds()
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					want := color.NRGBAModel.Convert(tc.img.At(x, y)).(color.NRGBA)
					if got := dst.NRGBAAt(x-r.Min.X, y-r.Min.Y); got != want {
						t.Fatalf("pixel (%d, %d): got %v want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestImage_ImgToNRGBAKeepsZeroBasedNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, img, imgToNRGBA(img))
}

func TestImage_EncodeByExtension(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	img.SetNRGBA(1, 1, color.NRGBA{R: 239, G: 68, B: 68, A: 255})

	var buf bytes.Buffer
	assert.NoError(encodeImg(&buf, ".PNG", img))
	decoded, err := png.Decode(&buf)
	assert.NoError(err)
	assert.True(sameImage(img, decoded))

	buf.Reset()
	assert.NoError(encodeImg(&buf, ".bmp", img))
	decoded, err = bmp.Decode(&buf)
	assert.NoError(err)
	assert.Equal(img.Bounds(), decoded.Bounds())

	buf.Reset()
	assert.NoError(encodeImg(&buf, ".jpg", img))
	decoded, err = jpeg.Decode(&buf)
	assert.NoError(err)
	// Transparent pixels are flattened on white.
	r, g, b, _ := decoded.At(12, 12).RGBA()
	assert.Greater(r>>8, uint32(240))
	assert.Greater(g>>8, uint32(240))
	assert.Greater(b>>8, uint32(240))

	buf.Reset()
	assert.ErrorIs(encodeImg(&buf, ".gif", img), ErrUnsupportedFormat)
	assert.Zero(buf.Len())
}

func TestImage_IsValidExtension(t *testing.T) {
	assert.True(t, isValidExtension(".PNG", previewExtensions))
	assert.True(t, isValidExtension(".jpeg", previewExtensions))
	assert.False(t, isValidExtension(".ico", previewExtensions))
	assert.False(t, isValidExtension("", previewExtensions))
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := color.NRGBAModel.Convert(colors[i]).(color.NRGBA)
			c.A = uint8(i % 256)
			img.SetNRGBA(x, y, c)
			i++
		}
	}
	return img
}

func makeRGBAImage(rect image.Rectangle, colors []color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colors[i])
			i++
		}
	}
	return img
}

// sameImage reports whether both images have the same size and the same
// non-premultiplied pixels.
func sameImage(a, b image.Image) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	na, nb := imgToNRGBA(a), imgToNRGBA(b)
	return bytes.Equal(na.Pix, nb.Pix)
}
