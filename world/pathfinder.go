package world

import "container/heap"

// MaxWalkPathSize is the longest path a single walk request may
// produce, matching the server's walk packet limit.
const MaxWalkPathSize = 32

// Step costs in tenths of a tile, so diagonals stay integral.
const (
	orthogonalCost = 10
	diagonalCost   = 14
)

// PathFinder searches walkable paths on a map. It keeps its scratch
// state between searches to avoid reallocating, so one instance must
// not be shared across goroutines.
type PathFinder struct {
	costs   map[TilePosition]int
	origins map[TilePosition]TilePosition
	open    openList
}

// NewPathFinder returns an empty path finder.
func NewPathFinder() *PathFinder {
	return &PathFinder{
		costs:   make(map[TilePosition]int),
		origins: make(map[TilePosition]TilePosition),
	}
}

var neighborOffsets = [8]TilePosition{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// FindWalkablePath returns the tile positions from start to goal,
// start included, or nil when no path within MaxWalkPathSize exists.
// Diagonal steps are allowed only when both adjacent orthogonal tiles
// are walkable, so paths never cut corners through blocked cells.
func (f *PathFinder) FindWalkablePath(m *Map, start, goal TilePosition) []TilePosition {
	if !m.IsWalkable(start) || !m.IsWalkable(goal) {
		return nil
	}

	clear(f.costs)
	clear(f.origins)
	f.open = f.open[:0]

	f.costs[start] = 0
	heap.Push(&f.open, openNode{position: start, priority: heuristic(start, goal)})

	for f.open.Len() > 0 {
		current := heap.Pop(&f.open).(openNode).position
		if current == goal {
			return f.reconstruct(start, goal)
		}

		for _, offset := range neighborOffsets {
			next := TilePosition{X: current.X + offset.X, Y: current.Y + offset.Y}
			if !m.IsWalkable(next) {
				continue
			}

			cost := orthogonalCost
			if offset.X != 0 && offset.Y != 0 {
				if !m.IsWalkable(TilePosition{X: current.X + offset.X, Y: current.Y}) ||
					!m.IsWalkable(TilePosition{X: current.X, Y: current.Y + offset.Y}) {
					continue
				}
				cost = diagonalCost
			}

			tentative := f.costs[current] + cost
			if known, seen := f.costs[next]; seen && known <= tentative {
				continue
			}
			f.costs[next] = tentative
			f.origins[next] = current
			heap.Push(&f.open, openNode{position: next, priority: tentative + heuristic(next, goal)})
		}
	}
	return nil
}

func (f *PathFinder) reconstruct(start, goal TilePosition) []TilePosition {
	length := 1
	for position := goal; position != start; position = f.origins[position] {
		length++
		if length > MaxWalkPathSize {
			return nil
		}
	}

	path := make([]TilePosition, length)
	position := goal
	for i := length - 1; i >= 0; i-- {
		path[i] = position
		position = f.origins[position]
	}
	return path
}

// heuristic is the octile distance in step-cost units. It never
// overestimates, so the search stays optimal.
func heuristic(from, to TilePosition) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return orthogonalCost*(dx-dy) + diagonalCost*dy
}

type openNode struct {
	position TilePosition
	priority int
}

type openList []openNode

func (l openList) Len() int           { return len(l) }
func (l openList) Less(i, j int) bool { return l[i].priority < l[j].priority }
func (l openList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l *openList) Push(x any)        { *l = append(*l, x.(openNode)) }
func (l *openList) Pop() any {
	old := *l
	n := len(old)
	node := old[n-1]
	*l = old[:n-1]
	return node
}
