package elev

import (
	"twinlift/src/types"
)

func (c *Controller) enqueue(req types.Request) {
	c.state.Queue = append(c.state.Queue, req)
	c.logger.Debug("Request queued", "request", req, "phase", c.state.Phase, "queued", len(c.state.Queue))
}

func (c *Controller) dequeue() types.Request {
	req := c.state.Queue[0]
	c.state.Queue = c.state.Queue[1:]
	return req
}

// processQueue serves queued requests from the head while the car is free or waiting for a selection.
//   - direction calls are served like a button press arriving now
//   - a selection with no pending direction boards with the direction inferred from the floor
//   - a selection against the pending direction goes back to the tail
//
// One pass visits each queued item at most once. Serving a direction call counts as progress and
// starts a fresh pass, so the loop ends once nothing left in the queue can be served.
func (c *Controller) processQueue() {
	if c.state.Processing || len(c.state.Queue) == 0 {
		return
	}
	c.state.Processing = true
	defer func() { c.state.Processing = false }()

	budget := len(c.state.Queue)
	for budget > 0 && len(c.state.Queue) > 0 {
		budget--
		req := c.dequeue()

		switch c.state.Phase {
		case PhaseIdle:
			switch req.Kind {
			case types.DirectionCall:
				if !c.directionPossible(req.Dir) {
					c.logger.Debug("Dropping queued call no longer possible", "request", req, "floor", c.state.CurrentFloor)
					continue
				}
				c.acceptDirectionCall(req.Dir)
				budget = len(c.state.Queue)
			case types.FloorSelect:
				if !c.servable(req.Floor) {
					c.logger.Debug("Dropping queued selection for current floor", "request", req)
					continue
				}
				c.board(req.Floor)
				return
			}

		case PhaseAwaitingSelection:
			switch req.Kind {
			case types.FloorSelect:
				if !c.servable(req.Floor) {
					c.logger.Debug("Dropping queued selection for current floor", "request", req)
					continue
				}
				if consistent(c.state.PendingDir, c.state.CurrentFloor, req.Floor) {
					c.selectFloor(req.Floor)
					return
				}
				c.requeue(req)
			case types.DirectionCall:
				if req.Dir == c.state.PendingDir {
					c.logger.Debug("Dropping queued call already pending", "request", req)
					continue
				}
				c.requeue(req)
			}

		default:
			c.state.Queue = append([]types.Request{req}, c.state.Queue...)
			return
		}
	}
	if len(c.state.Queue) > 0 {
		c.logger.Debug("Queue pass ended with requests left", "phase", c.state.Phase, "queued", len(c.state.Queue))
	}
}

func (c *Controller) requeue(req types.Request) {
	c.state.Queue = append(c.state.Queue, req)
	c.logger.Debug("Request requeued", "request", req, "pending", c.state.PendingDir)
}

// servable reports whether a queued selection still names a floor the car can travel to.
func (c *Controller) servable(floor int) bool {
	return c.inRange(floor) && float64(floor) != c.state.CurrentFloor
}
