package chart

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewProjectPicksModel(t *testing.T) {
	now := time.Unix(0, 0)
	g := NewProject("1", "grid", C2C, Settings{Width: 4, Height: 3}, now)
	if g.Grid == nil || g.Freeform != nil || g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("grid project wrong: %+v", g)
	}
	f := NewProject("2", "free", FreeformChart, DefaultSettings(), now)
	if f.Freeform == nil || f.Grid != nil || f.Kind() != KindFreeform {
		t.Fatalf("freeform project wrong: %+v", f)
	}
}

func TestProjectCloneIsDeep(t *testing.T) {
	p := NewProject("1", "p", Colorwork, DefaultSettings(), time.Now())
	p.Palette = Palette{{ID: "a", Color: "#000000"}}
	p.Progress = NewProgress()

	cp := p.Clone()
	cp.Grid.Paint(0, 0, "a")
	cp.Palette[0].Name = "x"
	cp.Progress.CurrentRow = 5
	*cp.Settings.ShowNumbers = false

	if !p.Grid.Cells[0][0].Empty() || p.Palette[0].Name != "" || p.Progress.CurrentRow != 0 || !p.Settings.Numbers() {
		t.Fatalf("clone shares state with the original")
	}
}

func TestNormalizeRepairsLoadedProject(t *testing.T) {
	raw := `{"id":"x","name":"n","chartType":"colorwork",
		"settings":{"width":3,"height":2,"gaugeH":1,"gaugeV":1,"gridLines":{}},
		"grid":{"cells":[[{"colorId":"a","symbolId":null},{"colorId":"gone","symbolId":null}]]},
		"palette":[{"id":"a","color":"#ffffff","name":"White","abbreviation":"W"}],
		"progressTracker":{"direction":"vertical","currentRow":50,"darkenMode":"done","brightness":300}}`
	var p Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	p.Normalize()

	assertShape(t, p.Grid, 3, 2)
	if p.Grid.Cells[0][0].ColorID != "a" || p.Grid.Cells[0][1].ColorID != "" {
		t.Fatalf("dangling colour kept: %+v", p.Grid.Cells[0])
	}
	if !p.Settings.Numbers() {
		t.Fatalf("show numbers should default on")
	}
	if p.Progress.CurrentRow != 2 || p.Progress.Brightness != 100 || p.Progress.DiagonalDirection != BottomLeft {
		t.Fatalf("progress not clamped: %+v", p.Progress)
	}
}

func TestParseChartType(t *testing.T) {
	if ct, err := ParseChartType(" C2C "); err != nil || ct != C2C {
		t.Fatalf("got %v %v", ct, err)
	}
	if _, err := ParseChartType("knitting"); err == nil {
		t.Fatalf("accepted unknown type")
	}
}

func TestNormalizeSeedsEmptyGridPalette(t *testing.T) {
	p := NewProject("1", "grid", Colorwork, DefaultSettings(), time.Unix(0, 0))
	p.Palette = nil
	p.Grid.Paint(0, 0, "gone")
	p.Normalize()
	if len(p.Palette) != 1 || p.Palette[0].Color != DefaultColor || p.Palette[0].Name != "Color 1" {
		t.Fatalf("palette = %+v", p.Palette)
	}
	if c, _ := p.Grid.At(0, 0); c.ColorID != "" {
		t.Fatalf("cell kept a dangling colour: %+v", c)
	}

	f := NewProject("2", "free", FreeformChart, DefaultSettings(), time.Unix(0, 0))
	f.Normalize()
	if len(f.Palette) != 0 {
		t.Fatalf("freeform palette seeded: %+v", f.Palette)
	}
}
