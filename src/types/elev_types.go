package types

// Direction is the way a car has committed to travel. DirNone means no pending direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// DirectionTo is the direction of travel from one floor to another, DirNone if they are equal.
func DirectionTo(from float64, to int) Direction {
	switch {
	case float64(to) > from:
		return DirUp
	case float64(to) < from:
		return DirDown
	}
	return DirNone
}

type Motion int

const (
	Idle Motion = iota
	Moving
)

func (m Motion) String() string {
	if m == Moving {
		return "moving"
	}
	return "idle"
}

type DoorState int

const (
	DoorsClosed DoorState = iota
	DoorsOpen
)

func (d DoorState) String() string {
	if d == DoorsOpen {
		return "open"
	}
	return "closed"
}
