package speedicon

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/speedometer/speedicon/utils"
	"github.com/stretchr/testify/assert"
)

func init() {
	utils.NoColor = true
}

func TestExec_Drawer(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	var out bytes.Buffer
	op := &Ops{
		Dst:     filepath.Join(dir, "Resources", "app.ico"),
		Preview: filepath.Join(dir, "Resources", "app.png"),
		Sizes:   []int{64, 32, 16},
		Out:     &out,
	}
	assert.NoError(NewDrawer().Execute(op))

	assert.FileExists(op.Dst)
	assert.FileExists(op.Preview)

	b, err := ReadBundle(op.Dst)
	assert.NoError(err)
	assert.ElementsMatch([]int{64, 32, 16}, b.Sizes())

	log := out.String()
	assert.Contains(log, "SpeedoMeter Icon Generator")
	assert.Contains(log, "Generating 64x64 icon...")
	assert.Contains(log, "Generating 16x16 icon...")
	assert.Contains(log, "Sizes included: 64x64, 32x32, 16x16")
	assert.Contains(log, "Execution time:")
}

func TestExec_DrawerDefaultSizes(t *testing.T) {
	dir := t.TempDir()
	op := &Ops{
		Dst:     filepath.Join(dir, "app.ico"),
		Preview: filepath.Join(dir, "app.png"),
		Out:     &bytes.Buffer{},
	}
	assert.NoError(t, NewDrawer().Execute(op))

	b, err := ReadBundle(op.Dst)
	assert.NoError(t, err)
	assert.NoError(t, b.Verify(DefaultSizes))
}

func TestExec_DrawerUnsupportedPreview(t *testing.T) {
	dir := t.TempDir()
	op := &Ops{
		Dst:     filepath.Join(dir, "app.ico"),
		Preview: filepath.Join(dir, "app.gif"),
		Sizes:   []int{16},
		Out:     &bytes.Buffer{},
	}
	assert.ErrorIs(t, NewDrawer().Execute(op), ErrUnsupportedFormat)
	assert.NoFileExists(t, op.Dst)
}

func TestExec_Converter(t *testing.T) {
	assert := assert.New(t)

	src := writeFile(t, "speedometer_icon.svg", []byte(redSquareSVG))
	dst := filepath.Join(t.TempDir(), "app.ico")

	var out bytes.Buffer
	op := &Ops{Src: src, Dst: dst, Out: &out}
	assert.NoError(NewConverter().Execute(op))

	b, err := ReadBundle(dst)
	assert.NoError(err)
	assert.ElementsMatch(ConverterSizes, b.Sizes())

	log := out.String()
	assert.Contains(log, "Rasterizing speedometer_icon.svg at 256x256...")
	assert.Contains(log, "The icon has been saved to: "+dst)
}

func TestExec_ConverterMissingSource(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	dst := filepath.Join(dir, "app.ico")

	var out bytes.Buffer
	op := &Ops{Src: filepath.Join(dir, "speedometer_icon.svg"), Dst: dst, Out: &out}
	err := NewConverter().Execute(op)
	assert.ErrorIs(err, ErrSourceNotFound)
	assert.NoFileExists(dst)
	assert.Contains(out.String(), "converting the image failed")
}

func TestExec_ConverterMissingSourceInteractive(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	dst := filepath.Join(dir, "app.ico")

	var out bytes.Buffer
	op := &Ops{Src: filepath.Join(dir, "speedometer_icon.svg"), Dst: dst, Out: &out, Interactive: true}
	err := NewConverter().Execute(op)
	assert.ErrorIs(err, ErrSourceNotFound)
	assert.NoFileExists(dst)
	assert.Contains(out.String(), "converting the image failed ✘")
}

func TestExec_DrawerInteractive(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	var out bytes.Buffer
	op := &Ops{
		Dst:         filepath.Join(dir, "app.ico"),
		Preview:     filepath.Join(dir, "app.png"),
		Sizes:       []int{32, 16},
		Out:         &out,
		Interactive: true,
	}
	assert.NoError(NewDrawer().Execute(op))
	assert.FileExists(op.Dst)

	log := out.String()
	assert.Contains(log, "Icon Generation Complete! ✔")
	assert.Contains(log, "Sizes included: 32x32, 16x16")
}

func TestExec_ValueOr(t *testing.T) {
	assert.Equal(t, DefaultIconPath, valueOr("", DefaultIconPath))
	assert.Equal(t, "out.ico", valueOr("out.ico", DefaultIconPath))
}
