package speedicon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{256, 128, 64, 48, 32, 16}, DefaultSizes)
	assert.Equal([]int{16, 32, 48, 64, 128, 256}, ConverterSizes)
	assert.Equal(filepath.Join("Resources", "app.ico"), DefaultIconPath)
	assert.Equal(filepath.Join("Resources", "app.png"), DefaultPreviewPath)
	assert.Equal(filepath.Join("Resources", "speedometer_icon.svg"), DefaultSVGPath)
}

func TestConfig_ParseSizes(t *testing.T) {
	assert := assert.New(t)

	sizes, err := ParseSizes("256,128, 64 ,48px,32,16")
	assert.NoError(err)
	assert.Equal([]int{256, 128, 64, 48, 32, 16}, sizes)

	sizes, err = ParseSizes("24,")
	assert.NoError(err)
	assert.Equal([]int{24}, sizes)

	_, err = ParseSizes("512")
	assert.ErrorIs(err, ErrSizeOutOfRange)

	_, err = ParseSizes("0")
	assert.ErrorIs(err, ErrSizeOutOfRange)

	_, err = ParseSizes("32,16,32")
	assert.ErrorIs(err, ErrDuplicateSize)

	_, err = ParseSizes("big")
	assert.Error(err)

	_, err = ParseSizes(" , ")
	assert.Error(err)
}
