package editor

import (
	"math"

	"stitchgrid/pkg/chart"
)

const (
	MinZoom   = 0.1
	MaxZoom   = 10.0
	ZoomStep  = 0.1
	PixelCell = 20.0
)

// Viewport maps screen coordinates onto the chart. CellWidth and CellHeight
// are the screen size of one cell at zoom 1. With Snap set, cell sizes are
// rounded to whole screen units, as on a terminal.
type Viewport struct {
	Zoom       float64
	PanX, PanY float64
	CellWidth  float64
	CellHeight float64
	Snap       bool
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: 1, CellWidth: PixelCell, CellHeight: PixelCell}
}

func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// CellSize is the on-screen size of one cell at the current zoom.
func (v Viewport) CellSize() (w, h float64) {
	w, h = v.CellWidth*v.Zoom, v.CellHeight*v.Zoom
	if v.Snap {
		w, h = math.Max(1, math.Round(w)), math.Max(1, math.Round(h))
	}
	return w, h
}

// CellAt returns the cell under a screen point. The result may lie outside
// the grid; callers check bounds.
func (v Viewport) CellAt(x, y float64) chart.Point {
	w, h := v.CellSize()
	return chart.Point{
		Row: int(math.Floor((y - v.PanY) / h)),
		Col: int(math.Floor((x - v.PanX) / w)),
	}
}

// CellOrigin is the screen position of a cell's top-left corner.
func (v Viewport) CellOrigin(row, col int) (x, y float64) {
	w, h := v.CellSize()
	return v.PanX + float64(col)*w, v.PanY + float64(row)*h
}

// ToWorld converts a screen point to freeform world units, where one cell
// spans chart.GridCellSize.
func (v Viewport) ToWorld(x, y float64) (float64, float64) {
	w, h := v.CellSize()
	return (x - v.PanX) / w * chart.GridCellSize, (y - v.PanY) / h * chart.GridCellSize
}

func (v Viewport) ToScreen(wx, wy float64) (float64, float64) {
	w, h := v.CellSize()
	return wx/chart.GridCellSize*w + v.PanX, wy/chart.GridCellSize*h + v.PanY
}
