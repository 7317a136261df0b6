package chart

import "testing"

func patterned(width, height int) *Grid {
	g := NewGrid(width, height)
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col].ColorID = string(rune('a' + row*width + col))
		}
	}
	return g
}

func TestSelectionBoundsUnordered(t *testing.T) {
	s := Selection{StartRow: 4, StartCol: 1, EndRow: 2, EndCol: 3}
	if b := s.Bounds(); b != (Rect{MinRow: 2, MinCol: 1, MaxRow: 4, MaxCol: 3}) {
		t.Fatalf("got %+v", b)
	}
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size %dx%d", s.Width(), s.Height())
	}
	if !s.Contains(3, 2) || s.Contains(1, 2) {
		t.Fatalf("contains wrong")
	}
}

func TestFillRect(t *testing.T) {
	g := NewGrid(6, 6)
	g.Paint(2, 3, "A")
	sel := Selection{StartRow: 2, StartCol: 3, EndRow: 3, EndCol: 4}
	if n := g.FillRect(sel, "B"); n != 4 {
		t.Fatalf("filled %d", n)
	}
	for row := range g.Cells {
		for col, c := range g.Cells[row] {
			want := ""
			if sel.Contains(row, col) {
				want = "B"
			}
			if c.ColorID != want {
				t.Fatalf("(%d,%d) = %q, want %q", row, col, c.ColorID, want)
			}
		}
	}
}

func TestCopyIsDetached(t *testing.T) {
	g := patterned(3, 3)
	clip := g.Copy(Selection{EndRow: 1, EndCol: 1})
	g.FillRect(Selection{EndRow: 2, EndCol: 2}, "")
	if clip.Width() != 2 || clip.Height() != 2 || clip.Cells[1][1].ColorID != "e" {
		t.Fatalf("clipboard changed with the grid: %+v", clip.Cells)
	}
}

func TestPasteTruncatesAtEdge(t *testing.T) {
	src := patterned(3, 3)
	clip := src.Copy(Selection{EndRow: 2, EndCol: 2})

	g := NewGrid(4, 4)
	if n := g.Paste(clip, 2, 2); n != 4 {
		t.Fatalf("wrote %d cells, want 4", n)
	}
	assertShape(t, g, 4, 4)
	if g.Cells[3][3].ColorID != "e" || g.Cells[2][2].ColorID != "a" {
		t.Fatalf("paste misplaced: %+v", g.Cells)
	}
	if g.CountColor("") != 12 {
		t.Fatalf("paste wrote outside its block")
	}
}

func TestMirrorRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		sel  Selection
	}{
		{"odd", Selection{StartRow: 0, StartCol: 0, EndRow: 2, EndCol: 2}},
		{"even", Selection{StartRow: 1, StartCol: 1, EndRow: 4, EndCol: 4}},
		{"reversed", Selection{StartRow: 3, StartCol: 4, EndRow: 1, EndCol: 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := patterned(5, 5)
			orig := g.Clone()
			g.MirrorH(tc.sel)
			g.MirrorH(tc.sel)
			if !g.Equal(orig) {
				t.Fatalf("mirrorH twice changed the grid")
			}
			g.MirrorV(tc.sel)
			g.MirrorV(tc.sel)
			if !g.Equal(orig) {
				t.Fatalf("mirrorV twice changed the grid")
			}
		})
	}
}

func TestMirrorHOddWidthKeepsCentre(t *testing.T) {
	g := patterned(3, 2)
	g.MirrorH(Selection{EndRow: 1, EndCol: 2})
	if g.Cells[0][0].ColorID != "c" || g.Cells[0][1].ColorID != "b" || g.Cells[0][2].ColorID != "a" {
		t.Fatalf("row 0 = %+v", g.Cells[0])
	}
}

func TestMirrorLeavesOutsideAlone(t *testing.T) {
	g := patterned(4, 4)
	orig := g.Clone()
	sel := Selection{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 2}
	g.MirrorV(sel)
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if !sel.Contains(row, col) && g.Cells[row][col] != orig.Cells[row][col] {
				t.Fatalf("(%d,%d) changed", row, col)
			}
		}
	}
	if g.Cells[1][1] != orig.Cells[2][1] {
		t.Fatalf("rows not swapped")
	}
}

func TestClampPullsCornersInside(t *testing.T) {
	g := NewGrid(3, 3)
	s := Selection{StartRow: -2, StartCol: 1, EndRow: 9, EndCol: 7}.Clamp(g)
	if s != (Selection{StartRow: 0, StartCol: 1, EndRow: 2, EndCol: 2}) {
		t.Fatalf("got %+v", s)
	}
}
