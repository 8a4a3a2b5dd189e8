package speedicon

import (
	"image"

	"github.com/speedometer/speedicon/utils"
)

const (
	// ReferenceSize is the icon size the literal pixel offsets of the drawing were authored for.
	ReferenceSize = 256
	// MinArcSize is the smallest icon size the scale and value arcs are drawn at.
	MinArcSize = 48
	// MinLabelSize is the smallest icon size the text label is drawn at, unless offsets are fixed.
	MinLabelSize = 32
)

// Box is an inclusive pixel rectangle: it covers the pixels X0..X1 and Y0..Y1.
type Box struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether the box is inverted and covers no pixel.
func (b Box) Empty() bool {
	return b.X1 < b.X0 || b.Y1 < b.Y0
}

// square returns the box of the disc of radius r centered on pixel (x, y).
func square(x, y, r int) Box {
	return Box{x - r, y - r, x + r, y + r}
}

// Segment is a straight line between the centers of two pixels.
type Segment struct {
	X0, Y0, X1, Y1 int
}

// Degenerate reports whether both ends of the segment fall on the same pixel.
func (s Segment) Degenerate() bool {
	return s.X0 == s.X1 && s.Y0 == s.Y1
}

// Arrow is a vertical shaft with two barbs meeting at its head.
type Arrow struct {
	Shaft Segment
	Barbs [2]Segment
}

// Layout holds every drawing parameter derived from the icon size.
type Layout struct {
	Size   int
	CX, CY int
	// Factor is the multiplier applied to the literal offsets of the reference drawing.
	Factor float64

	// DiscRadius is the radius of the outermost gradient ring. No disc is drawn if it's not positive.
	DiscRadius int

	Border      Box
	BorderWidth int
	HasBorder   bool

	Arc      Box
	ArcWidth int
	HasArcs  bool

	Ticks     [5]Segment
	TickWidth int

	Hub             Box
	HubOutlineWidth int

	Needle   [3]image.Point
	CapOuter Box
	CapInner Box

	Download   Arrow
	Upload     Arrow
	ArrowWidth int

	LabelTop    int
	LabelPoints float64
	HasLabel    bool
}

// NewLayout computes the drawing parameters for an icon of the given size.
// The background, border and arcs are always proportional to the size. The remaining
// elements were authored in pixels for the ReferenceSize: they are scaled by
// size/ReferenceSize, unless fixed is set, in which case the literal offsets are kept.
func NewLayout(size int, fixed bool) Layout {
	l := Layout{
		Size:   size,
		CX:     size / 2,
		CY:     size / 2,
		Factor: float64(size) / ReferenceSize,
	}
	if fixed {
		l.Factor = 1
	}
	cx, cy := l.CX, l.CY

	// offset scales a literal offset of the reference drawing.
	offset := func(v int) int {
		return utils.Scale(v, l.Factor)
	}
	// width scales a literal stroke width, keeping it visible.
	width := func(v int) int {
		return utils.Max(1, offset(v))
	}

	margin := utils.Max(int(float64(size)*0.08), 2)
	l.DiscRadius = size/2 - margin

	bm := int(float64(size) * 0.08)
	l.Border = Box{bm, bm, size - bm, size - bm}
	l.BorderWidth = utils.Max(int(float64(size)*0.015), 1)
	l.HasBorder = size-2*bm > 0

	am := int(float64(size) * 0.2)
	l.Arc = Box{am, int(float64(cy) * 0.6), size - am, int(float64(cy) * 1.3)}
	l.ArcWidth = utils.Max(2, size/15)
	l.HasArcs = size >= MinArcSize && am < size-am

	ticks := [5]Segment{
		{48, 158, 58, 150},
		{70, 98, 78, 105},
		{ReferenceSize / 2, 68, ReferenceSize / 2, 80},
		{186, 98, 178, 105},
		{208, 158, 198, 150},
	}
	for i, t := range ticks {
		l.Ticks[i] = Segment{offset(t.X0), offset(t.Y0), offset(t.X1), offset(t.Y1)}
	}
	// The middle tick always sits on the vertical axis.
	l.Ticks[2].X0, l.Ticks[2].X1 = cx, cx
	l.TickWidth = width(4)

	base := int(float64(cy) * 1.23)
	l.Hub = square(cx, base, offset(15))
	l.HubOutlineWidth = width(2)

	half := utils.Max(1, offset(4))
	l.Needle = [3]image.Point{
		{cx - half, base},
		{cx + half, base},
		{cx + offset(60), cy - offset(30)},
	}
	l.CapOuter = square(cx, base, offset(8))
	l.CapInner = square(cx, base, offset(4))

	shaft, barbX, barbY := offset(10), offset(8), offset(4)

	dx, dy := int(float64(cx)*0.66), int(float64(cy)*1.4)
	l.Download = Arrow{
		Shaft: Segment{dx, dy - shaft, dx, dy + shaft},
		Barbs: [2]Segment{
			{dx - barbX, dy + barbY, dx, dy + shaft},
			{dx + barbX, dy + barbY, dx, dy + shaft},
		},
	}

	ux, uy := int(float64(cx)*1.34), int(float64(cy)*1.4)
	l.Upload = Arrow{
		Shaft: Segment{ux, uy + shaft, ux, uy - shaft},
		Barbs: [2]Segment{
			{ux - barbX, uy - barbY, ux, uy - shaft},
			{ux + barbX, uy - barbY, ux, uy - shaft},
		},
	}
	l.ArrowWidth = width(6)

	l.LabelTop = int(float64(cy) * 1.6)
	l.LabelPoints = 20 * l.Factor
	l.HasLabel = fixed || size >= MinLabelSize

	return l
}
