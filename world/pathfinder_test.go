package world

import "testing"

// validatePath checks that every step is walkable, adjacent to the
// previous one, and never cuts a corner past a blocked tile.
func validatePath(t *testing.T, m *Map, path []TilePosition) {
	t.Helper()

	for i, position := range path {
		if !m.IsWalkable(position) {
			t.Fatalf("step %d at %v is not walkable", i, position)
		}
		if i == 0 {
			continue
		}
		previous := path[i-1]
		dx := position.X - previous.X
		dy := position.Y - previous.Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("step %d from %v to %v is not adjacent", i, previous, position)
		}
		if dx != 0 && dy != 0 {
			if !m.IsWalkable(TilePosition{X: previous.X + dx, Y: previous.Y}) ||
				!m.IsWalkable(TilePosition{X: previous.X, Y: previous.Y + dy}) {
				t.Fatalf("step %d from %v to %v cuts a blocked corner", i, previous, position)
			}
		}
	}
}

func TestFindWalkablePathOrthogonal(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	path := finder.FindWalkablePath(m, TilePosition{X: 1, Y: 1}, TilePosition{X: 4, Y: 1})
	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4: %v", len(path), path)
	}
	if path[0] != (TilePosition{X: 1, Y: 1}) || path[3] != (TilePosition{X: 4, Y: 1}) {
		t.Errorf("path endpoints wrong: %v", path)
	}
	validatePath(t, m, path)
}

func TestFindWalkablePathUsesDiagonals(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	path := finder.FindWalkablePath(m, TilePosition{X: 1, Y: 1}, TilePosition{X: 4, Y: 4})
	if len(path) != 4 {
		t.Fatalf("diagonal path length = %d, want 4: %v", len(path), path)
	}
	validatePath(t, m, path)
}

func TestFindWalkablePathAvoidsWalls(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	// Vertical wall at x=4 with a gap at y=8.
	for y := 0; y < 8; y++ {
		block(t, m, TilePosition{X: 4, Y: y})
	}
	finder := NewPathFinder()

	path := finder.FindWalkablePath(m, TilePosition{X: 2, Y: 2}, TilePosition{X: 6, Y: 2})
	if path == nil {
		t.Fatal("no path found around the wall")
	}
	validatePath(t, m, path)
}

func TestFindWalkablePathNeverCutsCorners(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	block(t, m, TilePosition{X: 2, Y: 1})
	block(t, m, TilePosition{X: 1, Y: 2})
	finder := NewPathFinder()

	path := finder.FindWalkablePath(m, TilePosition{X: 1, Y: 1}, TilePosition{X: 2, Y: 2})
	if len(path) != 7 {
		t.Fatalf("path length = %d, want 7 around the blocked corner: %v", len(path), path)
	}
	validatePath(t, m, path)
}

func TestFindWalkablePathUnreachable(t *testing.T) {
	m := newFlatMap(t, 6, 6, 0)
	for _, position := range []TilePosition{
		{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2},
		{X: 2, Y: 3}, {X: 4, Y: 3},
		{X: 2, Y: 4}, {X: 3, Y: 4}, {X: 4, Y: 4},
	} {
		block(t, m, position)
	}
	finder := NewPathFinder()

	if path := finder.FindWalkablePath(m, TilePosition{X: 0, Y: 0}, TilePosition{X: 3, Y: 3}); path != nil {
		t.Errorf("path into enclosed tile found: %v", path)
	}
}

func TestFindWalkablePathBounded(t *testing.T) {
	m := newFlatMap(t, 40, 1, 0)
	finder := NewPathFinder()

	if path := finder.FindWalkablePath(m, TilePosition{}, TilePosition{X: 39}); path != nil {
		t.Errorf("overlong path returned with %d steps", len(path))
	}

	path := finder.FindWalkablePath(m, TilePosition{}, TilePosition{X: 31})
	if len(path) != 32 {
		t.Errorf("path at the limit has %d steps, want 32", len(path))
	}
}

func TestFindWalkablePathDegenerateEndpoints(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	block(t, m, TilePosition{X: 3, Y: 3})
	finder := NewPathFinder()

	if path := finder.FindWalkablePath(m, TilePosition{X: 1, Y: 1}, TilePosition{X: 3, Y: 3}); path != nil {
		t.Error("path onto an unwalkable goal returned")
	}
	if path := finder.FindWalkablePath(m, TilePosition{X: 9, Y: 9}, TilePosition{X: 1, Y: 1}); path != nil {
		t.Error("path from an out-of-bounds start returned")
	}

	path := finder.FindWalkablePath(m, TilePosition{X: 1, Y: 1}, TilePosition{X: 1, Y: 1})
	if len(path) != 1 {
		t.Errorf("trivial path has %d steps, want 1", len(path))
	}
}
