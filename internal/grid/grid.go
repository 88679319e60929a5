// Package grid defines the shared drawing grid and the line rasterizer used
// to expand two-point strokes into the exact cells every viewer paints.
package grid

// Grid bounds, 0-indexed and exclusive on the high side.
const (
	Width  = 40
	Height = 20
)

// Point is a single integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether (x, y) lies on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Line returns the 8-connected straight path from (x1, y1) to (x2, y2),
// inclusive of both endpoints, via Bresenham's integer error accumulation.
// The result is deterministic for a given pair of endpoints.
func Line(x1, y1, x2, y2 int) []Point {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx + dy

	points := make([]Point, 0, max(dx, -dy)+1)
	x, y := x1, y1
	for {
		points = append(points, Point{X: x, Y: y})
		if x == x2 && y == y2 {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
