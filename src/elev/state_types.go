// State types are defined in elev package to make method receivers possible in fsm.go.
package elev

import (
	"errors"
	"fmt"
	"time"

	"twinlift/src/timer"
	"twinlift/src/types"
)

// ErrInvariant is wrapped by every error that means the timer/state machine contract was broken.
var ErrInvariant = errors.New("elevator invariant violated")

type Phase int

const (
	PhaseIdle              Phase = iota // doors closed, nothing scheduled
	PhaseAwaitingSelection              // doors open, pending direction set, waiting for a floor
	PhaseBoarding                       // doors open for a queued floor selection, door cycle scheduled
	PhaseClosing                        // doors closed, door cycle scheduled before travel
	PhaseMoving                         // travel scheduled
	PhaseArrived                        // doors open at the target, door cycle scheduled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle-closed"
	case PhaseAwaitingSelection:
		return "awaiting-selection"
	case PhaseBoarding:
		return "boarding"
	case PhaseClosing:
		return "closing"
	case PhaseMoving:
		return "moving"
	case PhaseArrived:
		return "arrived-open"
	}
	return "unknown"
}

// ElevState represents the state of one car.
type ElevState struct {
	ID           string
	CurrentFloor float64 // fractional only while Motion is Moving
	TargetFloor  int     // 0 until the first selection
	Motion       types.Motion
	Doors        types.DoorState
	PendingDir   types.Direction
	Queue        []types.Request
	Phase        Phase
	Processing   bool
}

func (s ElevState) String() string {
	return fmt.Sprintf("%s: floor=%.2f target=%d phase=%s motion=%s doors=%s pending=%s queue=%v",
		s.ID, s.CurrentFloor, s.TargetFloor, s.Phase, s.Motion, s.Doors, s.PendingDir, s.Queue)
}

// Settled reports whether no door cycle or travel is pending, so only new requests can change the state.
func (s ElevState) Settled() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseAwaitingSelection
}

// Actuator carries out the side effects the controller decides on.
type Actuator interface {
	RenderDoors(open bool)
	RenderPosition(floor float64)
	BeginTravel(target int, duration time.Duration)
	Schedule(duration time.Duration, token timer.Token)
}
