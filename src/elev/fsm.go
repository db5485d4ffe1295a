// Contains the phase transitions and side effects of a single car.
package elev

import (
	"fmt"
	"math"
	"time"

	"twinlift/src/timer"
	"twinlift/src/types"
)

// OnDoorCycleComplete is called once for every door cycle the controller scheduled.
func (c *Controller) OnDoorCycleComplete() error {
	switch c.state.Phase {
	case PhaseClosing:
		return c.beginTravel()
	case PhaseBoarding:
		c.selectFloor(c.state.TargetFloor)
		return nil
	case PhaseArrived:
		c.closeDoors()
		c.state.Phase = PhaseIdle
		c.processQueue()
		return nil
	}
	c.logger.Error("Door cycle completed with no door cycle scheduled", "phase", c.state.Phase)
	return fmt.Errorf("%w: door cycle completed in phase %s", ErrInvariant, c.state.Phase)
}

// OnTravelComplete is called once when the scheduled travel has elapsed. It snaps the car to the
// target floor and opens the doors.
func (c *Controller) OnTravelComplete() error {
	if c.state.Phase != PhaseMoving || c.state.Motion != types.Moving {
		c.logger.Error("Travel completed while not moving", "phase", c.state.Phase, "motion", c.state.Motion)
		return fmt.Errorf("%w: travel completed in phase %s", ErrInvariant, c.state.Phase)
	}
	c.state.CurrentFloor = float64(c.state.TargetFloor)
	c.state.PendingDir = types.DirNone
	c.state.Motion = types.Idle
	c.act.RenderPosition(c.state.CurrentFloor)
	c.logger.Info("Reached floor", "floor", c.state.TargetFloor)

	c.openDoors()
	c.state.Phase = PhaseArrived
	c.act.Schedule(c.cfg.DoorCycle, timer.DoorCycle)
	return nil
}

// Tick moves the displayed position along the current travel. elapsed is measured from departure.
// The position never reaches the target here; OnTravelComplete snaps it.
func (c *Controller) Tick(elapsed time.Duration) {
	if c.state.Phase != PhaseMoving || c.travelTime <= 0 {
		return
	}
	frac := float64(elapsed) / float64(c.travelTime)
	if frac <= 0 || frac >= 1 {
		return
	}
	c.state.CurrentFloor = c.departFloor + (float64(c.state.TargetFloor)-c.departFloor)*frac
	c.act.RenderPosition(c.state.CurrentFloor)
}

func (c *Controller) acceptDirectionCall(dir types.Direction) {
	c.state.PendingDir = dir
	c.openDoors()
	c.state.Phase = PhaseAwaitingSelection
	c.logger.Info("Direction call accepted", "dir", dir, "floor", c.state.CurrentFloor)
}

// abortDirectionCall drops a selection against the pending direction and releases the car.
func (c *Controller) abortDirectionCall(floor int) {
	c.logger.Debug("Floor selection against pending direction, aborting call",
		"floor", floor,
		"dir", c.state.PendingDir,
		"current", c.state.CurrentFloor)
	c.state.PendingDir = types.DirNone
	c.closeDoors()
	c.state.Phase = PhaseIdle
	c.processQueue()
}

// board opens the doors for a queued selection that arrived with no direction and
// schedules the door cycle after which the car leaves.
func (c *Controller) board(floor int) {
	c.state.PendingDir = types.DirectionTo(c.state.CurrentFloor, floor)
	c.state.TargetFloor = floor
	c.openDoors()
	c.state.Phase = PhaseBoarding
	c.act.Schedule(c.cfg.DoorCycle, timer.DoorCycle)
	c.logger.Info("Boarding for queued selection", "floor", floor, "dir", c.state.PendingDir)
}

func (c *Controller) selectFloor(floor int) {
	c.state.TargetFloor = floor
	c.closeDoors()
	c.state.Phase = PhaseClosing
	c.act.Schedule(c.cfg.DoorCycle, timer.DoorCycle)
	c.logger.Info("Floor selected", "floor", floor, "dir", c.state.PendingDir)
}

func (c *Controller) beginTravel() error {
	if c.state.Doors == types.DoorsOpen {
		c.logger.Error("Travel requested with doors open", "target", c.state.TargetFloor)
		return fmt.Errorf("%w: begin travel to %d with doors open", ErrInvariant, c.state.TargetFloor)
	}
	floors := math.Abs(float64(c.state.TargetFloor) - c.state.CurrentFloor)
	duration := time.Duration(math.Round(floors)) * c.cfg.PerFloorTravel

	c.departFloor = c.state.CurrentFloor
	c.travelTime = duration
	c.state.Motion = types.Moving
	c.state.Phase = PhaseMoving
	c.act.BeginTravel(c.state.TargetFloor, duration)
	c.act.Schedule(duration, timer.Travel)
	c.logger.Debug("Travel started", "from", c.departFloor, "to", c.state.TargetFloor, "duration", duration)
	return nil
}

// openDoors is a no-op if the doors are already open or the car is moving.
func (c *Controller) openDoors() {
	if c.state.Doors == types.DoorsOpen {
		return
	}
	if c.state.Motion == types.Moving {
		c.logger.Warn("Cannot open doors while moving")
		return
	}
	c.state.Doors = types.DoorsOpen
	c.act.RenderDoors(true)
}

// closeDoors is a no-op if the doors are already closed.
func (c *Controller) closeDoors() {
	if c.state.Doors == types.DoorsClosed {
		return
	}
	c.state.Doors = types.DoorsClosed
	c.act.RenderDoors(false)
}
