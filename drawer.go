package speedicon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/speedometer/speedicon/utils"
)

// DefaultLabel is the text written under the gauge.
const DefaultLabel = "SPEED"

// ErrInvalidSize is returned when an icon is requested with a non positive size.
var ErrInvalidSize = errors.New("invalid icon size")

// Drawer procedurally draws the speedometer icon.
type Drawer struct {
	Palette Palette
	// FontPath is the preferred TrueType font of the label.
	FontPath string
	Label    string
	// FixedOffsets keeps the pixel offsets of the reference drawing at every size
	// instead of scaling them proportionally.
	FixedOffsets bool
	Logger       *slog.Logger

	font       *truetype.Font
	fontSource FontSource
	fontLoaded bool
}

// NewDrawer returns a drawer configured with the default palette, font and label.
func NewDrawer() *Drawer {
	return &Drawer{
		Palette:  DefaultPalette,
		FontPath: DefaultFont,
		Label:    DefaultLabel,
	}
}

// FontSource returns the typeface the label is rendered with.
// The font is resolved on the first call to Draw.
func (d *Drawer) FontSource() FontSource {
	d.loadFont()
	return d.fontSource
}

// DrawAll draws the icon at every size, in the given order, and collects the images in a bundle.
func (d *Drawer) DrawAll(sizes []int) (*Bundle, error) {
	return d.drawAll(sizes, nil)
}

// drawAll draws the icon at every size, calling onSize before each one.
func (d *Drawer) drawAll(sizes []int, onSize func(int)) (*Bundle, error) {
	b := &Bundle{}
	for _, size := range sizes {
		if onSize != nil {
			onSize(size)
		}
		img, err := d.Draw(size)
		if err != nil {
			return nil, err
		}
		if err := b.Add(img); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Draw renders the speedometer icon as a size×size image.
// Elements whose geometry collapses at small sizes are left out.
func (d *Drawer) Draw(size int) (*image.NRGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	l := NewLayout(size, d.FixedOffsets)
	p := d.palette()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	drawDisc(img, l)

	dc := gg.NewContextForRGBA(img)
	dc.SetLineCapButt()

	if l.HasBorder {
		strokeEllipse(dc, l.Border, l.BorderWidth, p.Border)
	}

	if l.HasArcs {
		strokeArc(dc, l.Arc, 180, 360, l.ArcWidth, p.ScaleArc)
		strokeArc(dc, l.Arc, 180, 300, l.ArcWidth, p.ValueArc)
	}

	for _, t := range l.Ticks {
		strokeLine(dc, t, l.TickWidth, p.Tick)
	}

	fillEllipse(dc, l.Hub, p.HubFill)
	strokeEllipse(dc, l.Hub, l.HubOutlineWidth, p.HubOutline)

	fillPolygon(dc, l.Needle[:], p.Needle)
	fillEllipse(dc, l.CapOuter, p.Needle)
	fillEllipse(dc, l.CapInner, p.NeedleCap)

	drawArrow(dc, l.Download, l.ArrowWidth, p.Download)
	drawArrow(dc, l.Upload, l.ArrowWidth, p.Upload)

	if l.HasLabel {
		d.drawLabel(dc, l, p.Label)
	}

	d.logger().Debug("icon drawn",
		slog.Int("size", size),
		slog.Bool("arcs", l.HasArcs),
		slog.Bool("label", l.HasLabel),
		slog.String("font", d.FontSource().String()),
	)

	return imaging.Clone(img), nil
}

func (d *Drawer) palette() Palette {
	if d.Palette == (Palette{}) {
		return DefaultPalette
	}
	return d.Palette
}

func (d *Drawer) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return discardLogger
}

// loadFont resolves the label font once per drawer.
func (d *Drawer) loadFont() {
	if d.fontLoaded {
		return
	}
	d.fontLoaded = true

	path := d.FontPath
	if path == "" {
		path = DefaultFont
	}
	f, src, err := parseFont(path)
	d.font, d.fontSource = f, src
	if src != FontPreferred {
		d.logger().Info("preferred font unavailable, using fallback",
			slog.String("font", path),
			slog.String("fallback", src.String()),
			slog.Any("reason", err),
		)
	}
}

// drawLabel writes the label horizontally centered with its top edge on LabelTop.
func (d *Drawer) drawLabel(dc *gg.Context, l Layout, c color.NRGBA) {
	label := d.Label
	if label == "" {
		label = DefaultLabel
	}
	d.loadFont()

	face := newFace(d.font, l.LabelPoints)
	dc.SetFontFace(face)
	dc.SetColor(c)

	w, _ := dc.MeasureString(label)
	x := (l.Size - int(w)) / 2
	ascent := face.Metrics().Ascent.Ceil()
	dc.DrawString(label, float64(x), float64(l.LabelTop+ascent))
}

// drawDisc paints the background gradient. Rings are laid from the outside in,
// every ring replacing the pixels it covers, so a pixel takes the color of the
// smallest ring containing it.
func drawDisc(img *image.RGBA, l Layout) {
	outer := l.DiscRadius
	if outer <= 0 {
		return
	}
	// The smallest ring has radius 1 or 2, depending on the parity of the outermost one.
	inner := 2 - outer%2
	cx, cy := float64(l.CX)+0.5, float64(l.CY)+0.5

	for y := 0; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			dist := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			need := dist - 0.5
			if need > float64(outer) {
				continue
			}
			i := utils.Max(outer-2*int(math.Floor((float64(outer)-need)/2)), inner)
			img.Set(x, y, discColor(i, outer))
		}
	}
}

// ellipse returns the center and radii of the ellipse inscribed in the box.
func ellipse(b Box) (x, y, rx, ry float64) {
	x = float64(b.X0+b.X1+1) / 2
	y = float64(b.Y0+b.Y1+1) / 2
	rx = float64(b.X1-b.X0+1) / 2
	ry = float64(b.Y1-b.Y0+1) / 2
	return
}

func fillEllipse(dc *gg.Context, b Box, c color.Color) {
	if b.Empty() {
		return
	}
	x, y, rx, ry := ellipse(b)
	dc.DrawEllipse(x, y, rx, ry)
	dc.SetColor(c)
	dc.Fill()
}

// strokeEllipse outlines the ellipse inscribed in the box. The outline grows inwards
// from the box edge and degrades to a filled ellipse once it's wider than the radius.
func strokeEllipse(dc *gg.Context, b Box, width int, c color.Color) {
	if b.Empty() || width <= 0 {
		return
	}
	x, y, rx, ry := ellipse(b)
	w := float64(width)
	if rx <= w || ry <= w {
		fillEllipse(dc, b, c)
		return
	}
	dc.DrawEllipse(x, y, rx-w/2, ry-w/2)
	dc.SetLineWidth(w)
	dc.SetColor(c)
	dc.Stroke()
}

// strokeArc draws the part of the ellipse inscribed in the box between the two angles,
// measured in degrees clockwise from the 3 o'clock position.
func strokeArc(dc *gg.Context, b Box, from, to float64, width int, c color.Color) {
	if b.Empty() || width <= 0 {
		return
	}
	x, y, rx, ry := ellipse(b)
	w := float64(width)
	if rx <= w/2 || ry <= w/2 {
		return
	}
	dc.NewSubPath()
	dc.DrawEllipticalArc(x, y, rx-w/2, ry-w/2, gg.Radians(from), gg.Radians(to))
	dc.SetLineWidth(w)
	dc.SetColor(c)
	dc.Stroke()
}

func strokeLine(dc *gg.Context, s Segment, width int, c color.Color) {
	if s.Degenerate() || width <= 0 {
		return
	}
	dc.DrawLine(float64(s.X0)+0.5, float64(s.Y0)+0.5, float64(s.X1)+0.5, float64(s.Y1)+0.5)
	dc.SetLineWidth(float64(width))
	dc.SetColor(c)
	dc.Stroke()
}

func fillPolygon(dc *gg.Context, pts []image.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	dc.NewSubPath()
	for i, pt := range pts {
		if i == 0 {
			dc.MoveTo(float64(pt.X)+0.5, float64(pt.Y)+0.5)
			continue
		}
		dc.LineTo(float64(pt.X)+0.5, float64(pt.Y)+0.5)
	}
	dc.ClosePath()
	dc.SetColor(c)
	dc.Fill()
}

func drawArrow(dc *gg.Context, a Arrow, width int, c color.Color) {
	strokeLine(dc, a.Shaft, width, c)
	for _, b := range a.Barbs {
		strokeLine(dc, b, width, c)
	}
}
