package elev

import (
	"log/slog"
	"time"

	"github.com/tiendc/go-deepcopy"

	"twinlift/src/config"
	"twinlift/src/types"
)

// Controller is the request-scheduling state machine of one car. It is not safe for concurrent use;
// the executor drives it from a single goroutine.
type Controller struct {
	state  ElevState
	cfg    config.Config
	act    Actuator
	logger *slog.Logger

	departFloor float64
	travelTime  time.Duration
}

// New creates a car at floor 1, idle with doors closed and an empty queue.
func New(id string, cfg config.Config, act Actuator) *Controller {
	c := &Controller{
		state: ElevState{
			ID:           id,
			CurrentFloor: 1,
			Motion:       types.Idle,
			Doors:        types.DoorsClosed,
			PendingDir:   types.DirNone,
			Phase:        PhaseIdle,
		},
		cfg:    cfg,
		act:    act,
		logger: slog.Default().With("car", id),
	}
	c.logger.Debug("Elevator initialized", "floors", cfg.TotalFloors)
	return c
}

// Snapshot returns a deep copy of the state, safe to hand to another goroutine.
func (c *Controller) Snapshot() ElevState {
	snap := new(ElevState)
	if err := deepcopy.Copy(snap, &c.state); err != nil {
		panic(err)
	}
	return *snap
}

// Submit dispatches a request to the matching operation.
func (c *Controller) Submit(req types.Request) {
	switch req.Kind {
	case types.DirectionCall:
		c.SubmitDirectionCall(req.Dir)
	case types.FloorSelect:
		c.SubmitFloorSelection(req.Floor)
	default:
		c.logger.Warn("Unknown request kind ignored", "request", req)
	}
}

// SubmitDirectionCall handles a call-button press. Calls that cannot be served at this floor are ignored;
// calls that arrive while the car is busy are queued. A call made while travelling is always queued and
// checked against the floor the car stands at when it is dequeued.
func (c *Controller) SubmitDirectionCall(dir types.Direction) {
	if c.state.Motion != types.Moving && !c.directionPossible(dir) {
		c.logger.Debug("Direction call rejected", "dir", dir, "floor", c.state.CurrentFloor)
		return
	}
	switch {
	case c.state.Phase == PhaseIdle:
		c.acceptDirectionCall(dir)
	case c.state.Phase == PhaseAwaitingSelection && c.state.PendingDir == dir:
		c.logger.Debug("Direction call already pending", "dir", dir)
	default:
		c.enqueue(types.NewDirectionCall(dir))
	}
}

// SubmitFloorSelection handles a floor-button press. Out-of-range floors and the floor the car stands at
// are ignored. A floor against the pending direction aborts the pending call.
func (c *Controller) SubmitFloorSelection(floor int) {
	if !c.inRange(floor) {
		c.logger.Debug("Floor selection out of range", "floor", floor)
		return
	}
	if c.state.Motion == types.Idle && float64(floor) == c.state.CurrentFloor {
		c.logger.Debug("Floor selection is current floor", "floor", floor)
		return
	}

	switch c.state.Phase {
	case PhaseAwaitingSelection:
		if !consistent(c.state.PendingDir, c.state.CurrentFloor, floor) {
			c.abortDirectionCall(floor)
			return
		}
		c.selectFloor(floor)
	case PhaseIdle:
		c.enqueue(types.NewFloorSelect(floor))
		c.processQueue()
	default:
		c.enqueue(types.NewFloorSelect(floor))
	}
}

func (c *Controller) inRange(floor int) bool {
	return floor >= 1 && floor <= c.cfg.TotalFloors
}

// directionPossible reports whether the car can leave the current floor in dir.
func (c *Controller) directionPossible(dir types.Direction) bool {
	switch dir {
	case types.DirUp:
		return c.state.CurrentFloor < float64(c.cfg.TotalFloors)
	case types.DirDown:
		return c.state.CurrentFloor > 1
	}
	return false
}

// consistent reports whether floor lies strictly beyond from in direction dir.
func consistent(dir types.Direction, from float64, floor int) bool {
	switch dir {
	case types.DirUp:
		return float64(floor) > from
	case types.DirDown:
		return float64(floor) < from
	}
	return false
}
