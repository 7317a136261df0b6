package chart

// Region returns the 4-connected cells sharing the colour of the seed cell,
// in the order they were reached.
func (g *Grid) Region(row, col int) []Point {
	if !g.InBounds(row, col) {
		return nil
	}

	width := g.Width()
	target := g.Cells[row][col].ColorID
	visited := make([]bool, width*g.Height())
	queue := []Point{{row, col}}
	visited[row*width+col] = true
	result := make([]Point, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		adjacent := [4]Point{
			{current.Row - 1, current.Col}, // up
			{current.Row + 1, current.Col}, // down
			{current.Row, current.Col - 1}, // left
			{current.Row, current.Col + 1}, // right
		}
		for _, adj := range adjacent {
			if !g.InBounds(adj.Row, adj.Col) {
				continue
			}
			key := adj.Row*width + adj.Col
			if visited[key] || g.Cells[adj.Row][adj.Col].ColorID != target {
				continue
			}
			visited[key] = true
			queue = append(queue, adj)
		}
	}

	return result
}

// FloodFill recolours the region around the seed and returns how many cells
// changed. A seed out of bounds or already at colorID changes nothing.
func (g *Grid) FloodFill(row, col int, colorID string) int {
	if !g.CanFlood(row, col, colorID) {
		return 0
	}
	region := g.Region(row, col)
	for _, p := range region {
		g.Cells[p.Row][p.Col].ColorID = colorID
	}
	return len(region)
}

// CanFlood reports whether FloodFill at the seed would change anything.
func (g *Grid) CanFlood(row, col int, colorID string) bool {
	cell, ok := g.At(row, col)
	return ok && cell.ColorID != colorID
}
