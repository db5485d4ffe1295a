package types

import "fmt"

type RequestKind int

const (
	DirectionCall RequestKind = iota
	FloorSelect
)

// Request is either a call-button press (Dir set) or a floor-button press (Floor set), told apart by Kind.
type Request struct {
	Kind  RequestKind
	Dir   Direction
	Floor int
}

func NewDirectionCall(dir Direction) Request {
	return Request{Kind: DirectionCall, Dir: dir}
}

func NewFloorSelect(floor int) Request {
	return Request{Kind: FloorSelect, Floor: floor}
}

func (r Request) String() string {
	switch r.Kind {
	case DirectionCall:
		return fmt.Sprintf("Call(%s)", r.Dir)
	case FloorSelect:
		return fmt.Sprintf("Select(%d)", r.Floor)
	}
	return "Unknown"
}

// Command routes a request to one car.
type Command struct {
	CarID   string
	Request Request
}
