package world

import "testing"

// newFlatMap builds a fully walkable map with all corner heights set
// to height.
func newFlatMap(t *testing.T, width, height int, tileHeight float32) *Map {
	t.Helper()

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = Tile{
			SouthwestHeight: tileHeight,
			SoutheastHeight: tileHeight,
			NorthwestHeight: tileHeight,
			NortheastHeight: tileHeight,
			Walkable:        true,
		}
	}
	m, err := NewMap("flat", width, height, tiles)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

// block marks one tile unwalkable.
func block(t *testing.T, m *Map, position TilePosition) {
	t.Helper()
	if position.X < 0 || position.X >= m.width || position.Y < 0 || position.Y >= m.height {
		t.Fatalf("block out of bounds: %v", position)
	}
	m.tiles[position.Y*m.width+position.X].Walkable = false
}

func TestNewMapValidatesTileCount(t *testing.T) {
	if _, err := NewMap("broken", 4, 4, make([]Tile, 15)); err == nil {
		t.Error("mismatched tile count accepted")
	}
	if _, err := NewMap("broken", 0, 4, nil); err == nil {
		t.Error("zero width accepted")
	}
}

func TestMapTileBoundsChecked(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)

	if _, ok := m.Tile(TilePosition{X: 3, Y: 3}); !ok {
		t.Error("corner tile not found")
	}
	for _, position := range []TilePosition{
		{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 4, Y: 0}, {X: 0, Y: 4},
	} {
		if _, ok := m.Tile(position); ok {
			t.Errorf("out-of-bounds tile %v found", position)
		}
	}
}

func TestMapWorldPositionIsTileCenter(t *testing.T) {
	m := newFlatMap(t, 8, 8, 4)

	position, ok := m.WorldPosition(TilePosition{X: 2, Y: 3})
	if !ok {
		t.Fatal("in-bounds lookup failed")
	}
	if position.X != 25 || position.Y != 4 || position.Z != 35 {
		t.Errorf("world position = %v, want {25 4 35}", position)
	}

	if _, ok := m.WorldPosition(TilePosition{X: 99, Y: 99}); ok {
		t.Error("out-of-bounds world position found")
	}
}

func TestMapIsWalkable(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	block(t, m, TilePosition{X: 1, Y: 1})

	if m.IsWalkable(TilePosition{X: 1, Y: 1}) {
		t.Error("blocked tile reported walkable")
	}
	if m.IsWalkable(TilePosition{X: -1, Y: 2}) {
		t.Error("out-of-bounds tile reported walkable")
	}
	if !m.IsWalkable(TilePosition{X: 2, Y: 2}) {
		t.Error("open tile reported unwalkable")
	}
}
