package routing

import "math/rand"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Grid is the firewall map. The packet enters on the left edge and must
// reach the exit on the right edge.
type Grid struct {
	Width, Height int
	Start, Exit   Point
	walls         map[Point]bool
}

// Wall reports whether p holds a firewall.
func (g *Grid) Wall(p Point) bool {
	return g.walls[p]
}

// Walls returns the number of firewalls.
func (g *Grid) Walls() int {
	return len(g.walls)
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

var directions = []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// ShortestPath returns the number of moves from Start to Exit, or -1 when
// the exit is unreachable.
func (g *Grid) ShortestPath() int {
	dist := map[Point]int{g.Start: 0}
	queue := []Point{g.Start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == g.Exit {
			return dist[cur]
		}
		for _, d := range directions {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if !g.InBounds(next) || g.walls[next] {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return -1
}

// maxAttempts bounds wall placement retries before falling back to an
// open grid.
const maxAttempts = 64

// Generate places firewalls so that the exit stays reachable within budget
// moves.
func Generate(rng *rand.Rand, width, height, firewalls, budget int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Start:  Point{0, rng.Intn(height)},
		Exit:   Point{width - 1, rng.Intn(height)},
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		g.walls = make(map[Point]bool, firewalls)
		for len(g.walls) < firewalls {
			p := Point{rng.Intn(width), rng.Intn(height)}
			if p == g.Start || p == g.Exit {
				continue
			}
			g.walls[p] = true
		}
		if n := g.ShortestPath(); n >= 0 && n <= budget {
			return g
		}
	}

	g.walls = map[Point]bool{}
	return g
}
