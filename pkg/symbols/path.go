package symbols

import (
	"fmt"
	"strconv"
)

// Op is one drawing command of a symbol path.
type Op struct {
	Cmd    byte // M, L, Q, C or Z
	Points []float64
}

var arity = map[byte]int{'M': 2, 'L': 2, 'Q': 4, 'C': 6, 'Z': 0}

// Parse reads the absolute-coordinate subset of SVG path data used by the
// library. Commands may be joined to their first number ("M12 6") and
// coordinates may be separated by spaces or commas. A command followed by
// more coordinates than it takes repeats, with M repeating as L.
func Parse(path string) ([]Op, error) {
	toks, err := tokenize(path)
	if err != nil {
		return nil, err
	}
	var ops []Op
	for i := 0; i < len(toks); {
		t := toks[i]
		if !t.cmd {
			return nil, fmt.Errorf("symbols: coordinate %g has no command", t.num)
		}
		cmd := t.letter
		n, ok := arity[cmd]
		if !ok {
			return nil, fmt.Errorf("symbols: unsupported path command %q", string(cmd))
		}
		i++
		for {
			if i+n > len(toks) {
				return nil, fmt.Errorf("symbols: command %q is missing coordinates", string(cmd))
			}
			op := Op{Cmd: cmd, Points: make([]float64, n)}
			for j := 0; j < n; j++ {
				if toks[i+j].cmd {
					return nil, fmt.Errorf("symbols: command %q is missing coordinates", string(cmd))
				}
				op.Points[j] = toks[i+j].num
			}
			ops = append(ops, op)
			i += n
			if n == 0 || i >= len(toks) || toks[i].cmd {
				break
			}
			if cmd == 'M' {
				cmd, n = 'L', arity['L']
			}
		}
	}
	return ops, nil
}

type token struct {
	cmd    bool
	letter byte
	num    float64
}

func tokenize(path string) ([]token, error) {
	var toks []token
	for i := 0; i < len(path); {
		c := path[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isLetter(c):
			toks = append(toks, token{cmd: true, letter: c})
			i++
		default:
			j := scanNumber(path, i)
			if j == i {
				return nil, fmt.Errorf("symbols: bad path character %q", string(c))
			}
			v, err := strconv.ParseFloat(path[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("symbols: bad number %q", path[i:j])
			}
			toks = append(toks, token{num: v})
			i = j
		}
	}
	return toks, nil
}

// scanNumber returns the end of the number starting at i, or i when there
// is none.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := j
	for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
		j++
	}
	if j == digits {
		return i
	}
	if j+1 < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// Pen receives the ops of a path; gg.Context satisfies it.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// Trace replays ops on a pen, mapping the 24x24 view box through xf.
func Trace(ops []Op, pen Pen, xf func(x, y float64) (float64, float64)) {
	pt := func(p []float64, i int) (float64, float64) { return xf(p[i], p[i+1]) }
	for _, op := range ops {
		p := op.Points
		switch op.Cmd {
		case 'M':
			pen.MoveTo(pt(p, 0))
		case 'L':
			pen.LineTo(pt(p, 0))
		case 'Q':
			x1, y1 := pt(p, 0)
			x2, y2 := pt(p, 2)
			pen.QuadraticTo(x1, y1, x2, y2)
		case 'C':
			x1, y1 := pt(p, 0)
			x2, y2 := pt(p, 2)
			x3, y3 := pt(p, 4)
			pen.CubicTo(x1, y1, x2, y2, x3, y3)
		case 'Z':
			pen.ClosePath()
		}
	}
}
