// Package symbols is the built-in crochet stitch library.
package symbols

// Symbol is one stitch. Path is drawn on a 24x24 view box; Glyph is the
// single-cell rune used on a terminal.
type Symbol struct {
	ID           string
	Name         string
	Abbreviation string
	Category     string
	Path         string
	Glyph        rune
}

var library = []Symbol{
	{"chain", "Chain", "ch", "basic", "M12 6 C8 6 6 9 6 12 C6 15 8 18 12 18 C16 18 18 15 18 12 C18 9 16 6 12 6 Z", 'o'},
	{"slip-stitch", "Slip Stitch", "sl st", "basic", "M12 8 L12 16 M8 12 L16 12", '•'},
	{"single-crochet", "Single Crochet", "sc", "basic", "M12 4 L12 20 M8 8 L16 8", '+'},
	{"half-double", "Half Double Crochet", "hdc", "basic", "M12 4 L12 20 M8 6 L16 6 M10 10 L14 10", 'T'},
	{"double-crochet", "Double Crochet", "dc", "basic", "M12 4 L12 20 M8 5 L16 5 M8 9 L16 9", '‡'},
	{"treble-crochet", "Treble Crochet", "tr", "basic", "M12 4 L12 20 M8 5 L16 5 M8 8 L16 8 M8 11 L16 11", '≡'},
	{"double-treble", "Double Treble", "dtr", "basic", "M12 4 L12 20 M8 5 L16 5 M8 7 L16 7 M8 9 L16 9 M8 11 L16 11", '≣'},

	{"bobble", "Bobble", "bob", "textured", "M12 6 C6 6 6 18 12 18 C18 18 18 6 12 6 Z M12 4 L12 6 M12 18 L12 20", '0'},
	{"popcorn", "Popcorn", "pc", "textured", "M12 6 C6 6 6 18 12 18 C18 18 18 6 12 6 Z M12 4 L12 20", '@'},
	{"puff", "Puff Stitch", "puff", "textured", "M8 8 Q12 4 16 8 Q20 12 16 16 Q12 20 8 16 Q4 12 8 8 Z", '*'},
	{"cluster", "Cluster", "cl", "textured", "M8 20 L12 4 L16 20 M6 16 L18 16", 'A'},

	{"sc2tog", "SC 2 Together", "sc2tog", "decrease", "M8 20 L12 4 L16 20 M6 8 L18 8", 'Λ'},
	{"dc2tog", "DC 2 Together", "dc2tog", "decrease", "M8 20 L12 4 L16 20 M6 6 L18 6 M6 10 L18 10", '^'},

	{"inc", "Increase", "inc", "increase", "M12 4 L12 20 M6 12 L18 12 M6 8 L18 8", 'V'},

	{"filet-open", "Open Square (Filet)", "o", "filet", "M4 4 L20 4 L20 20 L4 20 Z", '□'},
	{"filet-filled", "Filled Square (Filet)", "x", "filet", "M4 4 L20 4 L20 20 L4 20 Z M4 4 L20 20 M20 4 L4 20", '■'},

	{"mosaic-x", "Overlay Stitch (Mosaic)", "X", "mosaic", "M6 6 L18 18 M18 6 L6 18", 'X'},
	{"mosaic-dc", "DC Overlay (Mosaic)", "DC", "mosaic", "M12 4 L12 20 M6 6 L18 18 M18 6 L6 18", '#'},

	{"tss", "Tunisian Simple Stitch", "Tss", "tunisian", "M12 4 L12 20", '|'},
	{"tks", "Tunisian Knit Stitch", "Tks", "tunisian", "M8 4 L8 20 M16 4 L16 20 M8 12 L16 12", 'H'},
	{"tps", "Tunisian Purl Stitch", "Tps", "tunisian", "M12 4 L12 20 M8 10 C8 14 16 14 16 10", '~'},
}

var categoryLabels = map[string]string{
	"basic":    "Basic Stitches",
	"textured": "Textured Stitches",
	"decrease": "Decreases",
	"increase": "Increases",
	"filet":    "Filet Crochet",
	"mosaic":   "Mosaic Crochet",
	"tunisian": "Tunisian Crochet",
}

var byID = func() map[string]Symbol {
	m := make(map[string]Symbol, len(library))
	for _, s := range library {
		m[s.ID] = s
	}
	return m
}()

// All returns the library in display order.
func All() []Symbol {
	out := make([]Symbol, len(library))
	copy(out, library)
	return out
}

func Get(id string) (Symbol, bool) {
	s, ok := byID[id]
	return s, ok
}

func ByCategory(category string) []Symbol {
	var out []Symbol
	for _, s := range library {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Categories lists the categories in the order they first appear.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range library {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

func CategoryLabel(category string) string {
	if l, ok := categoryLabels[category]; ok {
		return l
	}
	return category
}

// Next cycles through the library; an unknown id starts at the first symbol.
func Next(id string, step int) Symbol {
	idx := -1
	for i, s := range library {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return library[0]
	}
	n := len(library)
	return library[((idx+step)%n+n)%n]
}
