package chart

import (
	"fmt"
	"strings"
	"time"
)

type ChartType string

const (
	C2C           ChartType = "c2c"
	Colorwork     ChartType = "colorwork"
	Filet         ChartType = "filet"
	Mosaic        ChartType = "mosaic"
	Tunisian      ChartType = "tunisian"
	FreeformChart ChartType = "freeform"
)

// ChartTypes lists every chart type in menu order.
var ChartTypes = []ChartType{Colorwork, C2C, Filet, Mosaic, Tunisian, FreeformChart}

var chartLabels = map[ChartType]string{
	Colorwork:     "Colorwork",
	C2C:           "Corner to Corner (C2C)",
	Filet:         "Filet Crochet",
	Mosaic:        "Overlay Mosaic",
	Tunisian:      "Tunisian",
	FreeformChart: "Freeform",
}

func (t ChartType) Valid() bool {
	_, ok := chartLabels[t]
	return ok
}

func (t ChartType) Label() string {
	if l, ok := chartLabels[t]; ok {
		return l
	}
	return string(t)
}

// Kind is the data model a chart type edits.
type Kind int

const (
	KindGrid Kind = iota
	KindFreeform
)

func (t ChartType) Kind() Kind {
	if t == FreeformChart {
		return KindFreeform
	}
	return KindGrid
}

func ParseChartType(s string) (ChartType, error) {
	t := ChartType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown chart type %q", s)
	}
	return t, nil
}

type GridLines struct {
	Show             bool   `json:"show"`
	Color            string `json:"color"`
	Thickness        int    `json:"thickness"`
	Highlight5       bool   `json:"highlight5"`
	Highlight10      bool   `json:"highlight10"`
	Highlight5Color  string `json:"highlight5Color"`
	Highlight10Color string `json:"highlight10Color"`
}

func DefaultGridLines() GridLines {
	return GridLines{
		Show:             true,
		Color:            "#cccccc",
		Thickness:        1,
		Highlight5:       true,
		Highlight10:      true,
		Highlight5Color:  "#999999",
		Highlight10Color: "#666666",
	}
}

type Settings struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	GaugeH      float64   `json:"gaugeH"`
	GaugeV      float64   `json:"gaugeV"`
	ShowNumbers *bool     `json:"showNumbers,omitempty"`
	GridLines   GridLines `json:"gridLines"`
}

func DefaultSettings() Settings {
	show := true
	return Settings{
		Width:       50,
		Height:      50,
		GaugeH:      1,
		GaugeV:      1,
		ShowNumbers: &show,
		GridLines:   DefaultGridLines(),
	}
}

// Numbers reports whether row and column numbers are shown. Unset means shown.
func (s Settings) Numbers() bool {
	return s.ShowNumbers == nil || *s.ShowNumbers
}

func (s *Settings) SetNumbers(show bool) {
	s.ShowNumbers = &show
}

// Project is one chart. Exactly one of Grid and Freeform is set, chosen by ChartType.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ChartType ChartType `json:"chartType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	FolderID  string    `json:"folderId,omitempty"`
	Settings  Settings  `json:"settings"`
	Grid      *Grid     `json:"grid,omitempty"`
	Freeform  *Freeform `json:"freeform,omitempty"`
	Palette   Palette   `json:"palette"`
	Progress  *Progress `json:"progressTracker,omitempty"`
}

// NewProject builds an empty project with the payload its chart type needs.
// The palette starts empty.
func NewProject(id, name string, chartType ChartType, settings Settings, now time.Time) *Project {
	settings.Width = clampDimension(settings.Width)
	settings.Height = clampDimension(settings.Height)
	p := &Project{
		ID:        id,
		Name:      name,
		ChartType: chartType,
		CreatedAt: now,
		UpdatedAt: now,
		Settings:  settings,
		Palette:   Palette{},
	}
	if chartType.Kind() == KindFreeform {
		p.Freeform = NewFreeform()
	} else {
		p.Grid = NewGrid(settings.Width, settings.Height)
	}
	return p
}

func (p *Project) Kind() Kind {
	return p.ChartType.Kind()
}

// Clone returns a deep copy sharing no mutable state with p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Settings.ShowNumbers != nil {
		show := *p.Settings.ShowNumbers
		cp.Settings.ShowNumbers = &show
	}
	cp.Grid = p.Grid.Clone()
	cp.Freeform = p.Freeform.Clone()
	cp.Palette = p.Palette.Clone()
	cp.Progress = p.Progress.Clone()
	return &cp
}

// Width and Height are the chart dimensions; for grids they follow the cells.
func (p *Project) Width() int {
	if p.Grid != nil {
		return p.Grid.Width()
	}
	return p.Settings.Width
}

func (p *Project) Height() int {
	if p.Grid != nil {
		return p.Grid.Height()
	}
	return p.Settings.Height
}

// SyncSettings copies the grid dimensions back into the settings and
// re-clamps the progress cursor.
func (p *Project) SyncSettings() {
	if p.Grid != nil {
		p.Settings.Width = p.Grid.Width()
		p.Settings.Height = p.Grid.Height()
	}
	if p.Progress != nil {
		p.Progress.Clamp(p.Width(), p.Height())
	}
}

// Normalize repairs a project that came from storage or an import so every
// model invariant holds.
func (p *Project) Normalize() {
	if !p.ChartType.Valid() {
		p.ChartType = Colorwork
	}
	p.Settings.Width = clampDimension(p.Settings.Width)
	p.Settings.Height = clampDimension(p.Settings.Height)
	if p.Settings.ShowNumbers == nil {
		p.Settings.SetNumbers(true)
	}
	if p.Palette == nil {
		p.Palette = Palette{}
	}
	switch p.Kind() {
	case KindFreeform:
		p.Grid = nil
		if p.Freeform == nil {
			p.Freeform = NewFreeform()
		}
		p.Freeform.Normalize()
	default:
		p.Freeform = nil
		if p.Grid == nil {
			p.Grid = NewGrid(p.Settings.Width, p.Settings.Height)
		}
		p.Grid.Normalize(p.Settings.Width, p.Settings.Height)
		p.dropDanglingColors()
		if len(p.Palette) == 0 {
			entry, _ := NewPaletteEntry(DefaultColor, "", 1)
			p.Palette = Palette{entry}
		}
	}
	p.SyncSettings()
}

func (p *Project) dropDanglingColors() {
	for row := range p.Grid.Cells {
		for col := range p.Grid.Cells[row] {
			id := p.Grid.Cells[row][col].ColorID
			if id != "" && p.Palette.Index(id) < 0 {
				p.Grid.Cells[row][col].ColorID = ""
			}
		}
	}
}

func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}
