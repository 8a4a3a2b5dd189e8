package speedicon

import (
	"image/color"

	"github.com/speedometer/speedicon/utils"
)

// Palette holds the colors of the speedometer drawing.
// The background disc is not part of it: its gradient is derived from the disc radius.
type Palette struct {
	Border     color.NRGBA
	ScaleArc   color.NRGBA
	ValueArc   color.NRGBA
	Tick       color.NRGBA
	HubFill    color.NRGBA
	HubOutline color.NRGBA
	Needle     color.NRGBA
	NeedleCap  color.NRGBA
	Download   color.NRGBA
	Upload     color.NRGBA
	Label      color.NRGBA
}

// DefaultPalette is the blue/green/red scheme of the application icon.
var DefaultPalette = Palette{
	Border:     color.NRGBA{R: 30, G: 64, B: 175, A: 255},
	ScaleArc:   color.NRGBA{R: 51, G: 65, B: 85, A: 255},
	ValueArc:   color.NRGBA{R: 16, G: 185, B: 129, A: 255},
	Tick:       color.NRGBA{R: 226, G: 232, B: 240, A: 255},
	HubFill:    color.NRGBA{R: 30, G: 41, B: 59, A: 255},
	HubOutline: color.NRGBA{R: 71, G: 85, B: 105, A: 255},
	Needle:     color.NRGBA{R: 239, G: 68, B: 68, A: 255},
	NeedleCap:  color.NRGBA{R: 254, G: 242, B: 242, A: 255},
	Download:   color.NRGBA{R: 16, G: 185, B: 129, A: 255},
	Upload:     color.NRGBA{R: 59, G: 130, B: 246, A: 255},
	Label:      color.NRGBA{R: 226, G: 232, B: 240, A: 255},
}

// discColor returns the color of the background ring of radius i, where outer
// is the radius of the outermost ring. Inner rings are progressively more transparent.
func discColor(i, outer int) color.NRGBA {
	return color.NRGBA{
		R: uint8(utils.Min(255, 30+i/5)),
		G: uint8(utils.Min(255, 58+i/2)),
		B: uint8(utils.Min(255, 138+i)),
		A: uint8(255 * i / outer),
	}
}
