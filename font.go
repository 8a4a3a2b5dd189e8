package speedicon

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont is the preferred typeface of the icon label.
const DefaultFont = "arial.ttf"

// FontSource tells which typeface the label has been rendered with.
type FontSource int

const (
	// FontPreferred is the TrueType font requested by the caller.
	FontPreferred FontSource = iota
	// FontEmbedded is the Go Regular font compiled into the binary.
	FontEmbedded
	// FontBitmap is the fixed size 7x13 bitmap face, used when no TrueType font can be parsed.
	FontBitmap
)

func (s FontSource) String() string {
	switch s {
	case FontPreferred:
		return "preferred"
	case FontEmbedded:
		return "embedded"
	case FontBitmap:
		return "bitmap"
	}
	return "unknown"
}

// fontSearchPaths returns the candidate locations of a font file. Absolute and
// explicitly relative paths are used as they are, bare file names are also looked
// up in the font directories of the running platform.
func fontSearchPaths(name string) []string {
	paths := []string{name}
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return paths
	}

	var dirs []string
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts/Supplemental")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		dirs = append(dirs,
			"/usr/share/fonts/truetype/msttcorefonts",
			"/usr/share/fonts/TTF",
			"/usr/local/share/fonts",
		)
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
	}

	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// parseFont loads the font at path, falling back to the embedded Go Regular font.
// A nil font means that not even the embedded font could be parsed.
func parseFont(path string) (*truetype.Font, FontSource, error) {
	var lastErr error
	for _, p := range fontSearchPaths(path) {
		data, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			lastErr = err
			continue
		}
		return f, FontPreferred, nil
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, FontBitmap, err
	}
	return f, FontEmbedded, lastErr
}

// newFace returns a face of the given pixel size, or the bitmap face if f is nil.
func newFace(f *truetype.Font, points float64) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
