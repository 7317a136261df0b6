package importer

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// box is one median cut bucket. Colours are kept as 8-bit channels so the
// split and the averages match the image data exactly.
type box struct {
	colors [][3]uint8
}

func (b box) widestChannel() int {
	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for _, c := range b.colors {
		for ch := 0; ch < 3; ch++ {
			lo[ch] = min(lo[ch], c[ch])
			hi[ch] = max(hi[ch], c[ch])
		}
	}
	widest := 0
	for ch := 1; ch < 3; ch++ {
		if int(hi[ch])-int(lo[ch]) > int(hi[widest])-int(lo[widest]) {
			widest = ch
		}
	}
	return widest
}

// split halves the box at the median of its widest channel.
func (b box) split() (box, box) {
	ch := b.widestChannel()
	sort.SliceStable(b.colors, func(i, j int) bool { return b.colors[i][ch] < b.colors[j][ch] })
	mid := len(b.colors) / 2
	return box{colors: b.colors[:mid]}, box{colors: b.colors[mid:]}
}

func (b box) average() colorful.Color {
	var sum [3]int
	for _, c := range b.colors {
		for ch := 0; ch < 3; ch++ {
			sum[ch] += int(c[ch])
		}
	}
	n := len(b.colors)
	avg := func(ch int) float64 {
		return float64((sum[ch]+n/2)/n) / 255
	}
	return colorful.Color{R: avg(0), G: avg(1), B: avg(2)}
}

// medianCut reduces samples to at most maxColors representative colours.
// When the image already has few enough distinct colours they are
// returned as is, in first-seen order.
func medianCut(samples []colorful.Color, maxColors int) []colorful.Color {
	seen := make(map[[3]uint8]bool)
	var distinct []colorful.Color
	all := make([][3]uint8, len(samples))
	for i, s := range samples {
		r, g, b := s.RGB255()
		all[i] = [3]uint8{r, g, b}
		if !seen[all[i]] {
			seen[all[i]] = true
			distinct = append(distinct, s)
		}
	}
	if len(distinct) <= maxColors {
		return distinct
	}

	boxes := []box{{colors: all}}
	for len(boxes) < maxColors {
		widest := 0
		for i := range boxes {
			if len(boxes[i].colors) > len(boxes[widest].colors) {
				widest = i
			}
		}
		if len(boxes[widest].colors) <= 1 {
			break
		}
		a, b := boxes[widest].split()
		boxes = append(boxes[:widest], append([]box{a, b}, boxes[widest+1:]...)...)
	}

	out := make([]colorful.Color, len(boxes))
	for i, b := range boxes {
		out[i] = b.average()
	}
	return dedupe(out)
}

// dedupe drops colours that round to the same hex value.
func dedupe(colors []colorful.Color) []colorful.Color {
	seen := make(map[string]bool, len(colors))
	out := colors[:0]
	for _, c := range colors {
		if h := c.Hex(); !seen[h] {
			seen[h] = true
			out = append(out, c)
		}
	}
	return out
}
