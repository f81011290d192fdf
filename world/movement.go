package world

// ClientTick is the server-synchronized millisecond clock every timed
// world state is expressed in.
type ClientTick uint32

// Step is one tile arrival of an active movement.
type Step struct {
	ArrivalPosition  TilePosition
	ArrivalTimestamp uint32
}

// Movement is a walk in progress, a sequence of timestamped steps the
// entity position is interpolated between.
type Movement struct {
	Steps             []Step
	StartingTimestamp uint32
}

// NewMovement wraps a step sequence.
func NewMovement(steps []Step, startingTimestamp uint32) *Movement {
	return &Movement{Steps: steps, StartingTimestamp: startingTimestamp}
}

// Direction is one of the eight facing directions.
type Direction int

const (
	DirectionNorth Direction = iota
	DirectionNorthEast
	DirectionEast
	DirectionSouthEast
	DirectionSouth
	DirectionSouthWest
	DirectionWest
	DirectionNorthWest
)

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "north"
	case DirectionNorthEast:
		return "north-east"
	case DirectionEast:
		return "east"
	case DirectionSouthEast:
		return "south-east"
	case DirectionSouth:
		return "south"
	case DirectionSouthWest:
		return "south-west"
	case DirectionWest:
		return "west"
	default:
		return "north-west"
	}
}

// DirectionBetween returns the facing direction of a step from one
// tile to an adjacent one. Equal positions face south, the sprite
// default.
func DirectionBetween(from, to TilePosition) Direction {
	dx := sign(to.X - from.X)
	dy := sign(to.Y - from.Y)

	switch [2]int{dx, dy} {
	case [2]int{0, -1}:
		return DirectionNorth
	case [2]int{1, -1}:
		return DirectionNorthEast
	case [2]int{1, 0}:
		return DirectionEast
	case [2]int{1, 1}:
		return DirectionSouthEast
	case [2]int{-1, 1}:
		return DirectionSouthWest
	case [2]int{-1, 0}:
		return DirectionWest
	case [2]int{-1, -1}:
		return DirectionNorthWest
	default:
		return DirectionSouth
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
