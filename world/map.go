// Package world simulates the game world: the walkable tile grid,
// entity movement and animation, and the camera. Each frame the
// simulation is rendered into a graphics.RenderInstruction which the
// engine consumes read-only.
package world

import (
	"fmt"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/linear"
)

// TileSize is the edge length of one walkable tile in world units.
const TileSize = 10.0

// TilePosition addresses one tile on the map grid.
type TilePosition struct {
	X, Y int
}

// Tile is one grid cell. The four corner heights describe the sloped
// ground surface the cell covers.
type Tile struct {
	SouthwestHeight float32
	SoutheastHeight float32
	NorthwestHeight float32
	NortheastHeight float32
	Walkable        bool
}

// AverageHeight returns the height at the tile center.
func (t Tile) AverageHeight() float32 {
	return (t.SouthwestHeight + t.SoutheastHeight + t.NorthwestHeight + t.NortheastHeight) / 4
}

// Map is a loaded game map. Tiles are stored row-major, row 0 first.
type Map struct {
	name   string
	width  int
	height int
	tiles  []Tile
}

// NewMap wraps a tile grid. The tile slice length must match the grid
// dimensions exactly.
func NewMap(name string, width, height int, tiles []Tile) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("world: map %s: invalid size %dx%d", name, width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("world: map %s: %dx%d grid needs %d tiles, got %d",
			name, width, height, width*height, len(tiles))
	}
	return &Map{name: name, width: width, height: height, tiles: tiles}, nil
}

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// Width returns the grid width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in tiles.
func (m *Map) Height() int { return m.height }

// Tile returns the tile at position. The second return value is false
// when the position lies outside the grid.
func (m *Map) Tile(position TilePosition) (Tile, bool) {
	if position.X < 0 || position.X >= m.width || position.Y < 0 || position.Y >= m.height {
		return Tile{}, false
	}
	return m.tiles[position.Y*m.width+position.X], true
}

// IsWalkable reports whether position is inside the grid and walkable.
func (m *Map) IsWalkable(position TilePosition) bool {
	tile, ok := m.Tile(position)
	return ok && tile.Walkable
}

// WorldPosition returns the world-space center of the tile at position.
// Out-of-bounds positions are logged and reported as not found; the
// server occasionally sends them and the client must not crash.
func (m *Map) WorldPosition(position TilePosition) (linear.Vec3, bool) {
	tile, ok := m.Tile(position)
	if !ok {
		korin.Logger().Warn("tile position out of map bounds",
			"map", m.name, "x", position.X, "y", position.Y)
		return linear.Vec3{}, false
	}
	return linear.Vec3{
		X: (float32(position.X) + 0.5) * TileSize,
		Y: tile.AverageHeight(),
		Z: (float32(position.Y) + 0.5) * TileSize,
	}, true
}
