package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"twinlift/src/config"
	"twinlift/src/elev"
	"twinlift/src/timer"
	"twinlift/src/types"
)

// Car owns one controller and serializes every event for it onto the goroutine running Run.
type Car struct {
	ID string

	cfg     config.Config
	reqCh   chan types.Request
	stateCh chan chan elev.ElevState
	logger  *slog.Logger
}

func NewCar(id string, cfg config.Config) *Car {
	return &Car{
		ID:      id,
		cfg:     cfg,
		reqCh:   make(chan types.Request, 2*cfg.TotalFloors),
		stateCh: make(chan chan elev.ElevState),
		logger:  slog.Default().With("car", id),
	}
}

// Submit hands a request to the car. It blocks only if the request buffer is full.
func (car *Car) Submit(ctx context.Context, req types.Request) error {
	select {
	case car.reqCh <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a snapshot of the car taken inside its loop.
func (car *Car) State(ctx context.Context) (elev.ElevState, error) {
	reply := make(chan elev.ElevState, 1)
	select {
	case car.stateCh <- reply:
	case <-ctx.Done():
		return elev.ElevState{}, ctx.Err()
	}
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return elev.ElevState{}, ctx.Err()
	}
}

// WaitSettled blocks until the car has taken in every submitted request and has no door cycle or
// travel pending. Requests submitted concurrently may be missed.
func (car *Car) WaitSettled(ctx context.Context) error {
	poll := time.NewTicker(car.cfg.RenderInterval)
	defer poll.Stop()
	for {
		if len(car.reqCh) == 0 {
			st, err := car.State(ctx)
			if err != nil {
				return err
			}
			if st.Settled() {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
		}
	}
}

// Run is the car's event loop. It returns nil when ctx is cancelled and an error wrapping
// elev.ErrInvariant if the controller reports a broken timer contract.
//   - requests from the panel
//   - door-cycle and travel completions from the scheduler
//   - display ticks while travelling
//   - state snapshot requests
func (car *Car) Run(ctx context.Context) error {
	sched := timer.NewScheduler()
	defer sched.Stop()
	out := newDisplay(car.logger, sched, car.cfg.RenderInterval)
	defer out.stopTravel()
	ctrl := elev.New(car.ID, car.cfg, out)

	car.logger.Info("Car started", "floors", car.cfg.TotalFloors)
	for {
		select {
		case <-ctx.Done():
			car.logger.Info("Car stopped", "state", ctrl.Snapshot())
			return nil

		case req := <-car.reqCh:
			ctrl.Submit(req)

		case tok := <-sched.Timeout():
			var err error
			switch tok {
			case timer.DoorCycle:
				err = ctrl.OnDoorCycleComplete()
			case timer.Travel:
				out.stopTravel()
				err = ctrl.OnTravelComplete()
			}
			if err != nil {
				return fmt.Errorf("car %s: %w", car.ID, err)
			}

		case now := <-out.ticks():
			ctrl.Tick(now.Sub(out.departed))

		case reply := <-car.stateCh:
			reply <- ctrl.Snapshot()
		}
	}
}

// display renders doors and position through the logger and drives the travel ticker.
type display struct {
	logger   *slog.Logger
	sched    *timer.Scheduler
	interval time.Duration

	ticker   *time.Ticker
	departed time.Time
	shown    int
}

func newDisplay(logger *slog.Logger, sched *timer.Scheduler, interval time.Duration) *display {
	return &display{logger: logger, sched: sched, interval: interval, shown: 1}
}

func (d *display) RenderDoors(open bool) {
	if open {
		d.logger.Debug("Doors opened")
	} else {
		d.logger.Debug("Doors closed")
	}
}

// RenderPosition logs the floor display when the rounded floor changes.
func (d *display) RenderPosition(floor float64) {
	shown := int(floor + 0.5)
	if shown == d.shown {
		return
	}
	d.shown = shown
	d.logger.Info(fmt.Sprintf("Floor: %d", shown), "position", floor)
}

func (d *display) BeginTravel(target int, duration time.Duration) {
	d.stopTravel()
	d.departed = time.Now()
	d.ticker = time.NewTicker(d.interval)
	d.logger.Debug("Moving", "target", target, "duration", duration)
}

func (d *display) Schedule(duration time.Duration, token timer.Token) {
	d.sched.Schedule(duration, token)
}

// ticks is nil while the car is not travelling, which disables its select case.
func (d *display) ticks() <-chan time.Time {
	if d.ticker == nil {
		return nil
	}
	return d.ticker.C
}

func (d *display) stopTravel() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
	}
}
