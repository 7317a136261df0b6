package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/symbols"
)

type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
	Custom Size = "custom"
)

var sizeWidths = map[Size]int{
	Small:  600,
	Medium: 1200,
	Large:  2000,
}

const (
	legendWidth      = 150
	legendSwatch     = 20
	legendLineHeight = 24
	legendFontSize   = 12.0
	maxImageEdge     = 20000
)

type PNGOptions struct {
	Size        Size
	CustomWidth int
	GridLines   bool
	Legend      bool
	Background  string
	// Selection limits a grid export to a rectangle.
	Selection *chart.Selection
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Size:       Medium,
		GridLines:  true,
		Legend:     true,
		Background: "#FFFFFF",
	}
}

// TargetWidth is the requested image width including the legend.
func (o PNGOptions) TargetWidth() int {
	if o.Size == Custom {
		if o.CustomWidth > 0 {
			return o.CustomWidth
		}
		return sizeWidths[Medium]
	}
	if w, ok := sizeWidths[o.Size]; ok {
		return w
	}
	return sizeWidths[Medium]
}

func (o PNGOptions) legendWidth() int {
	if o.Legend {
		return legendWidth
	}
	return 0
}

// PNG renders the chart and encodes it to w.
func PNG(w io.Writer, p *chart.Project, opts PNGOptions) error {
	img, err := Render(p, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// Render draws the chart to an image: grid charts cell by cell, freeform
// charts symbol by symbol.
func Render(p *chart.Project, opts PNGOptions) (image.Image, error) {
	if p == nil {
		return nil, ErrNoGrid
	}
	face, err := loadFace(legendFontSize)
	if err != nil {
		return nil, err
	}
	var dc *gg.Context
	switch {
	case p.Grid != nil:
		dc, err = renderGrid(p, opts)
	case p.Freeform != nil:
		dc, err = renderFreeform(p, opts)
	default:
		return nil, ErrNoGrid
	}
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	if opts.Legend {
		drawLegend(dc, p.Palette, float64(dc.Width()-legendWidth+10))
	}
	return dc.Image(), nil
}

func renderGrid(p *chart.Project, opts PNGOptions) (*gg.Context, error) {
	g := p.Grid
	bounds := chart.Rect{MaxRow: g.Height() - 1, MaxCol: g.Width() - 1}
	if opts.Selection != nil {
		bounds = opts.Selection.Clamp(g).Bounds()
	}
	cols := bounds.MaxCol - bounds.MinCol + 1
	rows := bounds.MaxRow - bounds.MinRow + 1

	cell := (opts.TargetWidth() - opts.legendWidth()) / cols
	if cell < 1 {
		cell = 1
	}
	width := cols*cell + opts.legendWidth()
	height := rows * cell
	if opts.Legend {
		height = max(height, 10+len(p.Palette)*legendLineHeight+10)
	}
	if width > maxImageEdge || height > maxImageEdge {
		return nil, fmt.Errorf("export: image %dx%d is too large", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(parseColor(opts.Background, color.White))
	dc.Clear()

	cs := float64(cell)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := g.Cells[bounds.MinRow+row][bounds.MinCol+col]
			x, y := float64(col)*cs, float64(row)*cs
			fill := parseColor(opts.Background, color.White)
			if e, ok := p.Palette.Find(c.ColorID); ok {
				fill = e.RGB()
				dc.SetColor(fill)
				dc.DrawRectangle(x, y, cs, cs)
				dc.Fill()
			}
			if s, ok := symbols.Get(c.SymbolID); ok {
				err := drawSymbol(dc, s, contrast(fill), 1, func(px, py float64) (float64, float64) {
					return x + px/24*cs, y + py/24*cs
				}, cs/24)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	if opts.GridLines {
		drawGridLines(dc, p.Settings.GridLines, bounds, cs)
	}
	return dc, nil
}

// drawGridLines strokes every cell edge, with the fifth and tenth lines
// (counted from the chart origin) in their highlight colours.
func drawGridLines(dc *gg.Context, gl chart.GridLines, b chart.Rect, cs float64) {
	cols := b.MaxCol - b.MinCol + 1
	rows := b.MaxRow - b.MinRow + 1
	base := parseColor(gl.Color, color.Gray{Y: 0xcc})
	lineColor := func(n int) (color.Color, float64) {
		switch {
		case gl.Highlight10 && n%10 == 0:
			return parseColor(gl.Highlight10Color, base), 2
		case gl.Highlight5 && n%5 == 0:
			return parseColor(gl.Highlight5Color, base), 1.5
		}
		return base, 1
	}
	thickness := math.Max(1, float64(gl.Thickness))

	for col := 0; col <= cols; col++ {
		c, w := lineColor(b.MinCol + col)
		dc.SetColor(c)
		dc.SetLineWidth(w * thickness)
		dc.DrawLine(float64(col)*cs, 0, float64(col)*cs, float64(rows)*cs)
		dc.Stroke()
	}
	for row := 0; row <= rows; row++ {
		c, w := lineColor(b.MinRow + row)
		dc.SetColor(c)
		dc.SetLineWidth(w * thickness)
		dc.DrawLine(0, float64(row)*cs, float64(cols)*cs, float64(row)*cs)
		dc.Stroke()
	}
}

func renderFreeform(p *chart.Project, opts PNGOptions) (*gg.Context, error) {
	areaW, areaH := chart.WorkingArea(p.Settings)
	scale := float64(opts.TargetWidth()-opts.legendWidth()) / areaW
	if scale <= 0 {
		return nil, fmt.Errorf("export: target width %d leaves no room for the chart", opts.TargetWidth())
	}
	width := int(math.Ceil(areaW*scale)) + opts.legendWidth()
	height := int(math.Ceil(areaH * scale))
	if opts.Legend {
		height = max(height, 10+len(p.Palette)*legendLineHeight+10)
	}
	if width > maxImageEdge || height > maxImageEdge {
		return nil, fmt.Errorf("export: image %dx%d is too large", width, height)
	}

	dc := gg.NewContext(width, height)
	bg := parseColor(opts.Background, color.White)
	dc.SetColor(bg)
	dc.Clear()

	if opts.GridLines {
		dc.SetColor(parseColor(p.Settings.GridLines.Color, color.Gray{Y: 0xcc}))
		dc.SetLineWidth(1)
		for x := 0.0; x <= areaW; x += chart.GridCellSize {
			dc.DrawLine(x*scale, 0, x*scale, areaH*scale)
			dc.Stroke()
		}
		for y := 0.0; y <= areaH; y += chart.GridCellSize {
			dc.DrawLine(0, y*scale, areaW*scale, y*scale)
			dc.Stroke()
		}
	}

	for _, layer := range p.Freeform.Layers {
		if !layer.Visible {
			continue
		}
		for _, placed := range layer.Symbols {
			s, ok := symbols.Get(placed.SymbolID)
			if !ok {
				continue
			}
			ink := contrast(bg)
			if e, ok := p.Palette.Find(placed.ColorID); ok {
				ink = e.RGB()
			}
			size := chart.SymbolSize * placed.Scale * scale
			dc.Push()
			dc.Translate(placed.X*scale, placed.Y*scale)
			dc.Rotate(gg.Radians(placed.Rotation))
			err := drawSymbol(dc, s, ink, 2, func(px, py float64) (float64, float64) {
				return (px - 12) / 24 * size, (py - 12) / 24 * size
			}, size/24)
			dc.Pop()
			if err != nil {
				return nil, err
			}
		}
	}
	return dc, nil
}

// drawSymbol strokes a library symbol. unit is the pixel size of one view
// box unit and sets the line width.
func drawSymbol(dc *gg.Context, s symbols.Symbol, ink color.Color, weight float64, xf func(x, y float64) (float64, float64), unit float64) error {
	ops, err := symbols.Parse(s.Path)
	if err != nil {
		return fmt.Errorf("export: symbol %s: %w", s.ID, err)
	}
	dc.NewSubPath()
	symbols.Trace(ops, dc, xf)
	dc.SetColor(ink)
	dc.SetLineWidth(math.Max(1, weight*unit))
	dc.Stroke()
	return nil
}

func drawLegend(dc *gg.Context, palette chart.Palette, x float64) {
	for i, e := range palette {
		y := 10 + float64(i*legendLineHeight)
		dc.SetColor(e.RGB())
		dc.DrawRectangle(x, y, legendSwatch, legendSwatch)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, legendSwatch, legendSwatch)
		dc.Stroke()
		dc.DrawStringAnchored(e.Name, x+legendSwatch+8, y+legendSwatch/2, 0, 0.5)
	}
}

func loadFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func parseColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		if n, err := chart.NormalizeHex(hex); err == nil {
			c, _ = colorful.Hex(n)
			return c
		}
		return fallback
	}
	return c
}

// contrast picks black or white ink for legibility on bg.
func contrast(bg color.Color) color.Color {
	c, ok := colorful.MakeColor(bg)
	if !ok {
		return color.Black
	}
	l, _, _ := c.Lab()
	if l > 0.55 {
		return color.Black
	}
	return color.White
}
