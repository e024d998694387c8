// Package grid is a 4-connected grid world used by the gridplan command and
// by the planner's scenario tests.
package grid

import (
	"math/rand"

	"github.com/pdrpinto/wastar"
)

// Point is an (x, y) cell.
type Point [2]int

var directions = []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is a W x H board with blocked cells.
type Grid struct {
	W, H  int
	Walls map[Point]bool
}

// New returns an empty grid.
func New(w, h int) *Grid {
	return &Grid{W: w, H: h, Walls: make(map[Point]bool)}
}

// In reports whether p lies on the board.
func (g *Grid) In(p Point) bool { return p[0] >= 0 && p[0] < g.W && p[1] >= 0 && p[1] < g.H }

// Free reports whether p is inside the grid and not a wall.
func (g *Grid) Free(p Point) bool { return g.In(p) && !g.Walls[p] }

// SetWall blocks p.
func (g *Grid) SetWall(p Point) {
	if g.Walls == nil {
		g.Walls = make(map[Point]bool)
	}
	g.Walls[p] = true
}

// ClearWall unblocks p.
func (g *Grid) ClearWall(p Point) { delete(g.Walls, p) }

// Neighbors returns the in-bounds 4-neighbours of p, walls included. Walls
// are filtered by accessibility so that cached edges stay valid when walls
// move between planning episodes.
func (g *Grid) Neighbors(p Point) []Point {
	res := make([]Point, 0, len(directions))
	for _, d := range directions {
		np := Point{p[0] + d[0], p[1] + d[1]}
		if g.In(np) {
			res = append(res, np)
		}
	}
	return res
}

// Manhattan is the L1 distance between a and b.
func Manhattan(a, b Point) int {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// GenWalls places clustered random walls via random walks, never on keep.
func GenWalls(r *rand.Rand, w, h, clusters, steps int, density float64, keep ...Point) map[Point]bool {
	kept := make(map[Point]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}
	walls := map[Point]bool{}
	for c := 0; c < clusters; c++ {
		p := Point{r.Intn(w), r.Intn(h)}
		for s := 0; s < steps; s++ {
			if r.Float64() < density && !kept[p] {
				walls[p] = true
			}
			d := directions[r.Intn(len(directions))]
			np := Point{p[0] + d[0], p[1] + d[1]}
			if np[0] >= 0 && np[0] < w && np[1] >= 0 && np[1] < h {
				p = np
			}
		}
	}
	return walls
}

// Problem plans from Sources to the nearest of Goals on Grid with unit step
// cost. With StoreGoals every reachable goal is recorded and the search runs
// until the grid is exhausted.
type Problem struct {
	Grid       *Grid
	Sources    []Point
	Goals      []Point
	StoreGoals bool

	goalSet map[Point]bool
}

var _ wastar.Descriptor[Point, int] = (*Problem)(nil)

// Init rebuilds the goal index; the planner calls it on every Init.
func (p *Problem) Init() {
	p.goalSet = make(map[Point]bool, len(p.Goals))
	for _, goal := range p.Goals {
		p.goalSet[goal] = true
	}
}

func (p *Problem) Seeds() []Point { return p.Sources }

// Heuristic is the Manhattan distance to the closest goal, which is
// consistent for unit 4-connected moves.
func (p *Problem) Heuristic(s Point) int {
	best := -1
	for _, goal := range p.Goals {
		if d := Manhattan(s, goal); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func (p *Problem) Accessible(s Point) bool { return p.Grid.Free(s) }

func (p *Problem) Successors(s Point) []wastar.Edge[Point, int] {
	neighbors := p.Grid.Neighbors(s)
	edges := make([]wastar.Edge[Point, int], 0, len(neighbors))
	for _, n := range neighbors {
		edges = append(edges, wastar.Edge[Point, int]{To: n, Cost: 1})
	}
	return edges
}

func (p *Problem) isGoal(s Point) bool {
	if p.goalSet == nil {
		p.Init()
	}
	return p.goalSet[s]
}

func (p *Problem) StopSearch(s Point) bool { return !p.StoreGoals && p.isGoal(s) }

func (p *Problem) StorePath(s Point) bool { return p.StoreGoals && p.isGoal(s) }
