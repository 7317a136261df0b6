package editor

import (
	"testing"

	"stitchgrid/pkg/chart"
)

func TestFloodFillScenario(t *testing.T) {
	e := gridEditor(t, 10, 10)
	if !e.FloodFill(0, 0, "red") {
		t.Fatalf("fill rejected")
	}
	if got := e.Project().Grid.CountColor("red"); got != 100 {
		t.Fatalf("%d red cells, want 100", got)
	}
}

func TestFloodFillNoOpSkipsHistory(t *testing.T) {
	e := gridEditor(t, 5, 5)
	e.SetCell(2, 2, "blue")
	before := e.Snapshot()
	depth := undoDepth(e)

	if e.FloodFill(2, 2, "blue") {
		t.Fatalf("degenerate fill reported a change")
	}
	if e.FloodFill(9, 9, "red") {
		t.Fatalf("out of bounds fill reported a change")
	}
	if undoDepth(e) != depth {
		t.Fatalf("no-op fill pushed history")
	}
	if !e.Project().Grid.Equal(before.Grid) {
		t.Fatalf("grid changed")
	}
}

func TestFillSelectionScenario(t *testing.T) {
	e := gridEditor(t, 6, 6)
	e.SetCell(2, 3, "red")
	e.SetSelection(chart.Selection{StartRow: 2, StartCol: 3, EndRow: 3, EndCol: 4})
	depth := undoDepth(e)
	if !e.FillSelection("blue") {
		t.Fatalf("fill rejected")
	}
	if undoDepth(e) != depth+1 {
		t.Fatalf("fill selection took %d history entries", undoDepth(e)-depth)
	}
	g := e.Project().Grid
	if g.CountColor("blue") != 4 || g.CountColor("red") != 0 || g.CountColor("") != 32 {
		t.Fatalf("unexpected cells after fill")
	}
	for _, p := range []chart.Point{{Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 3, Col: 3}, {Row: 3, Col: 4}} {
		if g.Cells[p.Row][p.Col].ColorID != "blue" {
			t.Fatalf("%v not filled", p)
		}
	}
}

func TestDeleteColumnScenario(t *testing.T) {
	e := gridEditor(t, 5, 5)
	for i := 1; i <= 5; i++ {
		ok := e.DeleteColumn(0)
		if i < 5 && !ok {
			t.Fatalf("delete %d rejected", i)
		}
		if i == 5 && ok {
			t.Fatalf("last delete accepted")
		}
	}
	p := e.Project()
	if p.Grid.Width() != 1 || p.Settings.Width != 1 {
		t.Fatalf("width %d, settings %d", p.Grid.Width(), p.Settings.Width)
	}
	if undoDepth(e) != 4 {
		t.Fatalf("rejected delete pushed history")
	}
}

func TestResizeRejectsOutOfRange(t *testing.T) {
	e := gridEditor(t, 5, 5)
	if e.ResizeGrid(1001, 5) || e.ResizeGrid(5, 0) || e.ResizeGrid(5, 5) {
		t.Fatalf("invalid resize accepted")
	}
	if !e.ResizeGrid(3, 8) {
		t.Fatalf("resize rejected")
	}
	p := e.Project()
	if p.Settings.Width != 3 || p.Settings.Height != 8 {
		t.Fatalf("settings not synced: %+v", p.Settings)
	}
}

func TestStructuralEditReclampsSelection(t *testing.T) {
	e := gridEditor(t, 5, 5)
	e.SetSelection(chart.Selection{StartRow: 1, StartCol: 1, EndRow: 4, EndCol: 4})
	e.ResizeGrid(3, 3)
	sel, ok := e.Selection()
	if !ok || sel.EndRow != 2 || sel.EndCol != 2 {
		t.Fatalf("selection %+v", sel)
	}
}

func TestCopyPasteTruncates(t *testing.T) {
	e := gridEditor(t, 4, 4)
	e.SetSelection(chart.Selection{EndRow: 2, EndCol: 2})
	e.FillSelection("green")
	e.CopySelection()

	e.SetSelection(chart.Selection{StartRow: 3, StartCol: 3, EndRow: 3, EndCol: 3})
	if !e.PasteSelection() {
		t.Fatalf("paste rejected")
	}
	g := e.Project().Grid
	assertGridShape(t, g, 4, 4)
	if g.Cells[3][3].ColorID != "green" || g.CountColor("green") != 10 {
		t.Fatalf("paste wrote %d green cells", g.CountColor("green"))
	}
}

func TestClipboardSurvivesLaterEdits(t *testing.T) {
	e := gridEditor(t, 3, 3)
	e.SetCell(0, 0, "red")
	e.SetSelection(chart.Selection{})
	e.CopySelection()
	e.SetCell(0, 0, "blue")
	if e.Clipboard().Cells[0][0].ColorID != "red" {
		t.Fatalf("clipboard follows the grid")
	}
}

func TestSelectionOpsNeedSelection(t *testing.T) {
	e := gridEditor(t, 3, 3)
	if e.CopySelection() || e.PasteSelection() || e.FillSelection("red") || e.MirrorSelectionH() || e.MirrorSelectionV() {
		t.Fatalf("selection op ran without a selection")
	}
	e.SetSelection(chart.Selection{})
	if e.PasteSelection() {
		t.Fatalf("paste ran with an empty clipboard")
	}
	e.ClearSelection()
	if _, ok := e.Selection(); ok {
		t.Fatalf("selection not cleared")
	}
}

func TestSetCellsSingleUndo(t *testing.T) {
	e := gridEditor(t, 3, 3)
	ok := e.SetCells([]CellEdit{
		{Row: 0, Col: 0, ColorID: "red"},
		{Row: 1, Col: 1, ColorID: "blue", SymbolID: SetSymbol("dc")},
		{Row: 7, Col: 7, ColorID: "blue"},
	})
	if !ok || undoDepth(e) != 1 {
		t.Fatalf("batch: ok=%v depth=%d", ok, undoDepth(e))
	}
	if c := e.Project().Grid.Cells[1][1]; c.SymbolID != "dc" {
		t.Fatalf("symbol not set: %+v", c)
	}
	if e.SetCell(0, 0, "red") {
		t.Fatalf("identical write reported a change")
	}
	e.SetCell(1, 1, "green")
	if c := e.Project().Grid.Cells[1][1]; c != (chart.Cell{ColorID: "green", SymbolID: "dc"}) {
		t.Fatalf("SetCell dropped the symbol: %+v", c)
	}
}

func TestRemoveColorClearsReferences(t *testing.T) {
	e := gridEditor(t, 3, 3)
	e.SetCell(0, 0, "red")
	e.SetCell(1, 1, "blue")
	if !e.RemoveColor("red") {
		t.Fatalf("remove rejected")
	}
	g := e.Project().Grid
	if g.Cells[0][0].ColorID != "" || g.Cells[1][1].ColorID != "blue" {
		t.Fatalf("references not cleared")
	}
	if e.ActiveColor() != "blue" {
		t.Fatalf("active colour %q", e.ActiveColor())
	}
	e.RemoveColor("green")
	if e.RemoveColor("blue") {
		t.Fatalf("removed the last colour")
	}
}

func TestAddAndUpdateColor(t *testing.T) {
	e := gridEditor(t, 2, 2)
	entry, err := e.AddColor("#abcdef", "")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name != "Color 4" || entry.Abbreviation != "C4" || entry.Color != "#ABCDEF" {
		t.Fatalf("got %+v", entry)
	}
	if _, err := e.AddColor("not a colour", ""); err == nil {
		t.Fatalf("bad colour accepted")
	}
	name := "Sky"
	if err := e.UpdateColor(entry.ID, ColorPatch{Name: &name}); err != nil {
		t.Fatal(err)
	}
	if got, _ := e.Project().Palette.Find(entry.ID); got.Name != "Sky" {
		t.Fatalf("name %q", got.Name)
	}
	if err := e.UpdateColor("nope", ColorPatch{Name: &name}); err != ErrUnknownColor {
		t.Fatalf("err %v", err)
	}
}

func assertGridShape(t *testing.T, g *chart.Grid, width, height int) {
	t.Helper()
	if len(g.Cells) != height {
		t.Fatalf("rows %d, want %d", len(g.Cells), height)
	}
	for i, row := range g.Cells {
		if len(row) != width {
			t.Fatalf("row %d has %d cells", i, len(row))
		}
	}
}
