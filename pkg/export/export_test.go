package export

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"stitchgrid/pkg/chart"
)

func testProject(t *testing.T, chartType chart.ChartType, rows ...string) *chart.Project {
	t.Helper()
	height := len(rows)
	width := len(rows[0])
	s := chart.DefaultSettings()
	s.Width, s.Height = width, height
	p := chart.NewProject("p1", "Test Chart", chartType, s, time.Unix(0, 0))
	p.Palette = chart.Palette{
		{ID: "a", Color: "#FF0000", Name: "Red", Abbreviation: "C1"},
		{ID: "b", Color: "#0000FF", Name: "Blue", Abbreviation: "C2"},
		{ID: "c", Color: "#00FF00", Name: "Green"},
	}
	for r, line := range rows {
		for c, ch := range line {
			if ch != '.' {
				p.Grid.Paint(r, c, string(ch))
			}
		}
	}
	return p
}

func TestJSONRoundTrip(t *testing.T) {
	p := testProject(t, chart.Colorwork, "ab.", "cca")
	var buf bytes.Buffer
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := JSON(&buf, p, now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"app": "stitchgrid"`) || !strings.Contains(out, `"version": "1.0.0"`) {
		t.Fatalf("wrapper missing:\n%s", out)
	}
	if !strings.Contains(out, `"colorId": null`) {
		t.Fatalf("empty cells not written as null")
	}

	got, err := ParseJSON(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Grid.Equal(p.Grid) || len(got.Palette) != 3 || got.Name != p.Name {
		t.Fatalf("round trip lost data")
	}
}

func TestParseJSONAcceptsRawAndLegacy(t *testing.T) {
	raw := `{"id":"x","name":"Raw","chartType":"c2c","settings":{"width":2,"height":1},
		"grid":{"cells":[[{"colorId":"q","symbolId":null},{"colorId":null,"symbolId":null}]]},
		"palette":[{"id":"q","color":"#123456","name":"Navy","abbreviation":"N"}]}`
	p, err := ParseJSON([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if p.ChartType != chart.C2C || p.Grid.Cells[0][0].ColorID != "q" || !p.Settings.Numbers() {
		t.Fatalf("raw project %+v", p)
	}

	legacy := `{"version":"1.0.0","app":"stitchfizzle","project":` + raw + `}`
	if p, err := ParseJSON([]byte(legacy)); err != nil || p.Name != "Raw" {
		t.Fatalf("legacy wrapper: %v %v", p, err)
	}

	if _, err := ParseJSON([]byte(`{"hello":"world"}`)); !errors.Is(err, ErrNotProject) {
		t.Fatalf("err %v", err)
	}
	if _, err := ParseJSON([]byte(`not json`)); err == nil {
		t.Fatalf("garbage parsed")
	}
}

func TestFileName(t *testing.T) {
	p := &chart.Project{Name: "Baby's Blanket #2"}
	if got := FileName(p, ".json"); got != "Baby_s_Blanket__2.stitchgrid.json" {
		t.Fatalf("got %q", got)
	}
	if got := FileName(p, ".png"); got != "Baby_s_Blanket__2.png" {
		t.Fatalf("got %q", got)
	}
}

func TestWrittenInstructionsRows(t *testing.T) {
	// printed bottom to top: row 2 first, row 1 last
	p := testProject(t, chart.Colorwork,
		"c.ab",
		"aaab",
	)
	got, err := WrittenInstructions(p, DefaultInstructionOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Test Chart\n----------\n",
		"Size: 4 x 2",
		"  C1 = Red",
		"  Gre = Green",
		"Row 2: 3C1, C2 (4 stitches)\nRow 1: Gre, C1, C2 (3 stitches)",
		"  Total rows: 2",
		"  Total stitches: 7",
		"  Colors used: 3",
	} {
		if !strings.Contains(got.Text, want) {
			t.Fatalf("missing %q in:\n%s", want, got.Text)
		}
	}
	if got.TotalStitches != 7 || got.RowCount != 2 {
		t.Fatalf("totals %+v", got)
	}
	if strings.Join(got.ColorsUsed, "") != "abc" {
		t.Fatalf("colours used %v", got.ColorsUsed)
	}
}

func TestRowNumbersIgnorePrintOrder(t *testing.T) {
	p := testProject(t, chart.Colorwork, "aaa", "bbb")
	for _, order := range []Order{BottomToTop, TopToBottom} {
		opts := DefaultInstructionOptions()
		opts.Order = order
		got, err := WrittenInstructions(p, opts)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"Row 1: 3C1 (3 stitches)", "Row 2: 3C2 (3 stitches)"} {
			if !strings.Contains(got.Text, want) {
				t.Errorf("order %v: missing %q in:\n%s", order, want, got.Text)
			}
		}
		first, second := strings.Index(got.Text, "Row 1:"), strings.Index(got.Text, "Row 2:")
		if (order == BottomToTop) != (second < first) {
			t.Errorf("order %v printed rows in the wrong order:\n%s", order, got.Text)
		}
	}
}

func TestWrittenInstructionsMarkdownTopDown(t *testing.T) {
	p := testProject(t, chart.Colorwork, "ab", "..")
	opts := InstructionOptions{Order: TopToBottom, RowNumbers: true, Format: Markdown}
	got, err := WrittenInstructions(p, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Test Chart", "## Color Legend", "- **C2**: Blue", "**Row 1:** C1, C2", "**Row 2:** \n", "- Total stitches: 2"} {
		if !strings.Contains(got.Text, want) {
			t.Fatalf("missing %q in:\n%s", want, got.Text)
		}
	}
	if strings.Contains(got.Text, "stitches)") {
		t.Fatalf("stitch counts written although disabled")
	}
}

func TestC2CDiagonals(t *testing.T) {
	// a 3x2 chart has 4 diagonals: 2 increasing, then 2 decreasing
	p := testProject(t, chart.C2C,
		"abc",
		"aab",
	)
	got, err := WrittenInstructions(p, DefaultInstructionOptions())
	if err != nil {
		t.Fatal(err)
	}
	// rows reversed for bottom to top: r0="aab", r1="abc"
	for _, want := range []string{
		"Row 1 (Inc): C1\n",
		"Row 2 (Inc): C1, C2\n",
		"Row 3 (Dec): C1, Gre\n",
		"Row 4 (Dec): C2\n",
	} {
		if !strings.Contains(got.Text, want) {
			t.Fatalf("missing %q in:\n%s", want, got.Text)
		}
	}
	if got.TotalStitches != 6 {
		t.Fatalf("total %d", got.TotalStitches)
	}
}

func TestInstructionsNeedGrid(t *testing.T) {
	p := chart.NewProject("f", "Free", chart.FreeformChart, chart.DefaultSettings(), time.Unix(0, 0))
	if _, err := WrittenInstructions(p, DefaultInstructionOptions()); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("err %v", err)
	}
	if err := Text(&bytes.Buffer{}, p, nil); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("err %v", err)
	}
}

func TestTextChart(t *testing.T) {
	p := testProject(t, chart.Colorwork, "ab.", "cca")
	var buf bytes.Buffer
	if err := Text(&buf, p, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "AB. 2" || lines[1] != "CCA 1" {
		t.Fatalf("chart:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "C  #00FF00  Green (Green)") {
		t.Fatalf("legend:\n%s", buf.String())
	}

	buf.Reset()
	sel := chart.Selection{StartRow: 1, StartCol: 2, EndRow: 1, EndCol: 1}
	Text(&buf, p, &sel)
	if !strings.HasPrefix(buf.String(), "CA 1\n") {
		t.Fatalf("selection chart:\n%s", buf.String())
	}
}

func TestPNGSizes(t *testing.T) {
	p := testProject(t, chart.Colorwork, "ab.", "cca")
	p.Grid.Cells[0][0].SymbolID = "chain"

	tests := []struct {
		name   string
		opts   PNGOptions
		width  int
		height int
	}{
		// (600-150)/3 = 150px cells
		{"small with legend", PNGOptions{Size: Small, Legend: true, GridLines: true}, 600, 300},
		{"custom no legend", PNGOptions{Size: Custom, CustomWidth: 90}, 90, 60},
		{"selection", PNGOptions{Size: Small, Selection: &chart.Selection{EndRow: 0, EndCol: 1}}, 600, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PNG(&buf, p, tt.opts); err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Fatalf("image %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestPNGCellColours(t *testing.T) {
	p := testProject(t, chart.Colorwork, "ab", "..")
	img, err := Render(p, PNGOptions{Size: Custom, CustomWidth: 100, Background: "#FFFFFF"})
	if err != nil {
		t.Fatal(err)
	}
	// 50px cells; sample cell centres
	if r, g, b, _ := img.At(25, 25).RGBA(); r>>8 != 0xFF || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("red cell is %x %x %x", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(75, 25).RGBA(); r>>8 != 0 || g>>8 != 0 || b>>8 != 0xFF {
		t.Fatalf("blue cell is %x %x %x", r>>8, g>>8, b>>8)
	}
	if r, _, _, _ := img.At(25, 75).RGBA(); r>>8 != 0xFF {
		t.Fatalf("empty cell not background")
	}
}

func TestPNGCellSymbolOverlay(t *testing.T) {
	p := testProject(t, chart.Colorwork, ".")
	p.Grid.Cells[0][0].SymbolID = "tss"
	img, err := Render(p, PNGOptions{Size: Custom, CustomWidth: 100, Background: "#FFFFFF"})
	if err != nil {
		t.Fatal(err)
	}
	// tss is a vertical stroke down the middle of the cell
	if r, _, _, _ := img.At(50, 50).RGBA(); r>>8 > 0x80 {
		t.Fatalf("symbol stroke not drawn")
	}
	if r, _, _, _ := img.At(20, 50).RGBA(); r>>8 != 0xFF {
		t.Fatalf("symbol drawn outside its stroke")
	}
}

func TestPNGFreeform(t *testing.T) {
	s := chart.DefaultSettings()
	s.Width, s.Height = 4, 2
	p := chart.NewProject("f", "Free", chart.FreeformChart, s, time.Unix(0, 0))
	p.Palette = chart.Palette{{ID: "a", Color: "#000000", Name: "Black"}}
	p.Freeform.Layers[0].Symbols = append(p.Freeform.Layers[0].Symbols,
		chart.PlacedSymbol{ID: "s1", SymbolID: "filet-filled", ColorID: "a", X: 100, Y: 50, Rotation: 45, Scale: 1})

	img, err := Render(p, PNGOptions{Size: Custom, CustomWidth: 200})
	if err != nil {
		t.Fatal(err)
	}
	// 200 wide area, scale 1; the 4x2 settings give a 200x100 area
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("image %v", b)
	}
	// the filled square's crossing strokes pass through its centre
	if r, _, _, _ := img.At(100, 50).RGBA(); r>>8 > 0x80 {
		t.Fatalf("symbol centre not drawn")
	}
}

func TestPNGTooLarge(t *testing.T) {
	p := testProject(t, chart.Colorwork, "a")
	if _, err := Render(p, PNGOptions{Size: Custom, CustomWidth: 50000}); err == nil {
		t.Fatalf("oversized image accepted")
	}
}
