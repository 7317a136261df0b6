package chart

import "testing"

func TestNormalizeHex(t *testing.T) {
	for in, want := range map[string]string{
		"#4a90d9": "#4A90D9",
		"4A90D9":  "#4A90D9",
		" #fff ":  "#FFFFFF",
	} {
		got, err := NormalizeHex(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q = %q, want %q", in, got, want)
		}
	}
	if _, err := NormalizeHex("#zzzzzz"); err == nil {
		t.Fatalf("accepted bad colour")
	}
}

func TestNewPaletteEntryNames(t *testing.T) {
	e, err := NewPaletteEntry("#ff0000", "", 3)
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "Color 3" || e.Abbreviation != "C3" || e.ID == "" || e.Color != "#FF0000" {
		t.Fatalf("got %+v", e)
	}
	named, _ := NewPaletteEntry("#00ff00", "Moss", 4)
	if named.Name != "Moss" || named.Label() != "C4" {
		t.Fatalf("got %+v", named)
	}
}

func TestPaletteRemove(t *testing.T) {
	p := Palette{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if !p.Remove("b") || p.Remove("b") {
		t.Fatalf("remove reported wrong result")
	}
	if len(p) != 2 || p.Index("c") != 1 || p.First() != "a" {
		t.Fatalf("got %+v", p)
	}
}
