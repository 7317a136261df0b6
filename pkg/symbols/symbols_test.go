package symbols

import (
	"strings"
	"testing"
)

func TestLibraryIsConsistent(t *testing.T) {
	glyphs := map[rune]string{}
	for _, s := range All() {
		if _, err := Parse(s.Path); err != nil {
			t.Errorf("%s: %v", s.ID, err)
		}
		if CategoryLabel(s.Category) == s.Category {
			t.Errorf("%s: category %q has no label", s.ID, s.Category)
		}
		if other, dup := glyphs[s.Glyph]; dup {
			t.Errorf("%s and %s share glyph %q", s.ID, other, s.Glyph)
		}
		glyphs[s.Glyph] = s.ID
	}
	if len(All()) != 21 {
		t.Fatalf("library has %d symbols", len(All()))
	}
}

func TestLookup(t *testing.T) {
	s, ok := Get("double-crochet")
	if !ok || s.Abbreviation != "dc" {
		t.Fatalf("got %+v %v", s, ok)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("found unknown symbol")
	}
	if got := len(ByCategory("filet")); got != 2 {
		t.Fatalf("filet has %d symbols", got)
	}
	cats := Categories()
	if len(cats) != 7 || cats[0] != "basic" || cats[6] != "tunisian" {
		t.Fatalf("categories %v", cats)
	}
}

func TestNextWraps(t *testing.T) {
	if Next("tps", 1).ID != "chain" || Next("chain", -1).ID != "tps" {
		t.Fatalf("next does not wrap")
	}
	if Next("unknown", 1).ID != "chain" {
		t.Fatalf("unknown id should start at the first symbol")
	}
}

type recorder struct{ calls []string }

func (r *recorder) MoveTo(x, y float64) { r.calls = append(r.calls, "M") }
func (r *recorder) LineTo(x, y float64) { r.calls = append(r.calls, "L") }
func (r *recorder) QuadraticTo(x1, y1, x2, y2 float64) { r.calls = append(r.calls, "Q") }
func (r *recorder) CubicTo(x1, y1, x2, y2, x3, y3 float64) { r.calls = append(r.calls, "C") }
func (r *recorder) ClosePath() { r.calls = append(r.calls, "Z") }

func TestParseAndTrace(t *testing.T) {
	ops, err := Parse("M4 4 L20 4 Q1 2 3 4 C1 2 3 4 5 6 Z")
	if err != nil {
		t.Fatal(err)
	}
	var r recorder
	var first [2]float64
	Trace(ops, &r, func(x, y float64) (float64, float64) {
		if first == [2]float64{} {
			first = [2]float64{x * 2, y * 2}
		}
		return x * 2, y * 2
	})
	if got := len(r.calls); got != 5 || r.calls[2] != "Q" || r.calls[4] != "Z" {
		t.Fatalf("calls %v", r.calls)
	}
	if first != [2]float64{8, 8} {
		t.Fatalf("transform not applied: %v", first)
	}

	for _, bad := range []string{"M4", "A1 2", "M x y"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("%q parsed", bad)
		}
	}
}

func TestParseJoinedCommands(t *testing.T) {
	ops, err := Parse("M12 6L4,4 -2.5e1 1 Z")
	if err != nil {
		t.Fatal(err)
	}
	want := []Op{
		{Cmd: 'M', Points: []float64{12, 6}},
		{Cmd: 'L', Points: []float64{4, 4}},
		{Cmd: 'L', Points: []float64{-25, 1}},
		{Cmd: 'Z', Points: []float64{}},
	}
	if len(ops) != len(want) {
		t.Fatalf("ops %v", ops)
	}
	for i, op := range ops {
		if op.Cmd != want[i].Cmd || len(op.Points) != len(want[i].Points) {
			t.Fatalf("op %d = %c %v; want %c %v", i, op.Cmd, op.Points, want[i].Cmd, want[i].Points)
		}
		for j := range op.Points {
			if op.Points[j] != want[i].Points[j] {
				t.Fatalf("op %d = %c %v; want %c %v", i, op.Cmd, op.Points, want[i].Cmd, want[i].Points)
			}
		}
	}

	if _, err := Parse("4 4 L1 1"); err == nil {
		t.Error("coordinates before a command parsed")
	}
}

func TestLibraryPathsTrace(t *testing.T) {
	s, _ := Get("chain")
	ops, err := Parse(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	var r recorder
	Trace(ops, &r, func(x, y float64) (float64, float64) { return x, y })
	if got := strings.Join(r.calls, ""); got != "MCCCCZ" {
		t.Fatalf("chain traced as %s", got)
	}
}
