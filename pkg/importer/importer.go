// Package importer turns photos and drawings into colour charts.
package importer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"

	"stitchgrid/pkg/chart"
)

const (
	DefaultMaxColors = 8
	MaxColors        = 64
	// opaqueAlpha is the 8-bit alpha above which a pixel becomes a stitch.
	opaqueAlpha = 128
)

var ErrEmptyImage = errors.New("importer: image has no opaque pixels")

type Options struct {
	// Width and Height are the chart size before rotation. When one of
	// them is zero it follows the image aspect ratio.
	Width, Height int
	MaxColors     int
	// Rotation is clockwise, in degrees: 0, 90, 180 or 270.
	Rotation int
}

// Result is a chart ready for Editor.CreateFromImport.
type Result struct {
	Cells   [][]chart.Cell
	Palette chart.Palette
	Width   int
	Height  int
}

// Decode reads a PNG, JPEG, GIF, BMP or WebP image and charts it.
func Decode(r io.Reader, opts Options) (*Result, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("importer: decode: %w", err)
	}
	res, err := Convert(img, opts)
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", format, err)
	}
	return res, nil
}

// Convert scales img to the target size, rotates it, reduces it to at
// most MaxColors colours and maps every opaque pixel onto that palette.
func Convert(img image.Image, opts Options) (*Result, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	opts, err := opts.resolve(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	pixels := rotate(scaled, opts.Rotation)

	var samples []colorful.Color
	pb := pixels.Bounds()
	for y := pb.Min.Y; y < pb.Max.Y; y++ {
		for x := pb.Min.X; x < pb.Max.X; x++ {
			if c, ok := opaque(pixels.NRGBAAt(x, y)); ok {
				samples = append(samples, c)
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrEmptyImage
	}

	colors := medianCut(samples, opts.MaxColors)
	palette := make(chart.Palette, 0, len(colors))
	for i, c := range colors {
		entry, err := chart.NewPaletteEntry(c.Hex(), "", i+1)
		if err != nil {
			return nil, err
		}
		palette = append(palette, entry)
	}

	res := &Result{
		Cells:   make([][]chart.Cell, pb.Dy()),
		Palette: palette,
		Width:   pb.Dx(),
		Height:  pb.Dy(),
	}
	for y := 0; y < pb.Dy(); y++ {
		row := make([]chart.Cell, pb.Dx())
		for x := range row {
			if c, ok := opaque(pixels.NRGBAAt(pb.Min.X+x, pb.Min.Y+y)); ok {
				row[x].ColorID = palette[nearest(c, colors)].ID
			}
		}
		res.Cells[y] = row
	}
	return res, nil
}

func (o Options) resolve(srcW, srcH int) (Options, error) {
	switch {
	case o.Width <= 0 && o.Height <= 0:
		o.Width = min(srcW, chart.DefaultSettings().Width)
		o.Height = aspect(o.Width, srcH, srcW)
	case o.Height <= 0:
		o.Height = aspect(o.Width, srcH, srcW)
	case o.Width <= 0:
		o.Width = aspect(o.Height, srcW, srcH)
	}
	if !chart.ValidDimensions(o.Width, o.Height) {
		return o, fmt.Errorf("importer: size %dx%d out of range", o.Width, o.Height)
	}
	if o.MaxColors <= 0 {
		o.MaxColors = DefaultMaxColors
	}
	if o.MaxColors > MaxColors {
		return o, fmt.Errorf("importer: at most %d colours", MaxColors)
	}
	switch o.Rotation {
	case 0, 90, 180, 270:
	default:
		return o, fmt.Errorf("importer: rotation %d is not a quarter turn", o.Rotation)
	}
	return o, nil
}

// aspect scales n by num/den, never below one.
func aspect(n, num, den int) int {
	return max(1, int(math.Round(float64(n)*float64(num)/float64(den))))
}

// rotate turns src clockwise by a quarter-turn multiple.
func rotate(src *image.NRGBA, degrees int) *image.NRGBA {
	w, h := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	var s2d f64.Aff3
	dst := image.NewNRGBA(image.Rect(0, 0, int(h), int(w)))
	switch degrees {
	case 90:
		s2d = f64.Aff3{0, -1, h, 1, 0, 0}
	case 180:
		dst = image.NewNRGBA(src.Bounds())
		s2d = f64.Aff3{-1, 0, w, 0, -1, h}
	case 270:
		s2d = f64.Aff3{0, 1, 0, -1, 0, w}
	default:
		return src
	}
	xdraw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return dst
}

func opaque(c color.NRGBA) (colorful.Color, bool) {
	if c.A <= opaqueAlpha {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}, true
}

// nearest is the index of the palette colour closest to c in Lab space.
func nearest(c colorful.Color, palette []colorful.Color) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range palette {
		if d := c.DistanceLab(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
