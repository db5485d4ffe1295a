// Package panel reads control-panel presses from a text stream, one per line:
//
//	left up       direction call
//	right 5       floor selection
//	state [car]   print car state
//	quit          stop
package panel

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"twinlift/src/types"
)

var (
	ErrSyntax     = errors.New("panel: cannot parse line")
	ErrUnknownCar = errors.New("panel: unknown car")
)

type Verb int

const (
	Press Verb = iota
	ShowState
	Quit
)

// Line is one parsed input line. CarID is empty for a state query over all cars.
type Line struct {
	Verb    Verb
	Command types.Command
}

// Parse turns one input line into a Line. Floors are not range checked here; the car ignores
// floors it does not have.
func Parse(text string, cars []string) (Line, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return Line{}, fmt.Errorf("%w: empty", ErrSyntax)
	}

	switch fields[0] {
	case "quit", "exit":
		return Line{Verb: Quit}, nil
	case "state":
		switch len(fields) {
		case 1:
			return Line{Verb: ShowState}, nil
		case 2:
			if !slices.Contains(cars, fields[1]) {
				return Line{}, fmt.Errorf("%w: %q", ErrUnknownCar, fields[1])
			}
			return Line{Verb: ShowState, Command: types.Command{CarID: fields[1]}}, nil
		}
		return Line{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}

	if len(fields) != 2 {
		return Line{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	car := fields[0]
	if !slices.Contains(cars, car) {
		return Line{}, fmt.Errorf("%w: %q", ErrUnknownCar, car)
	}

	var req types.Request
	switch fields[1] {
	case "up":
		req = types.NewDirectionCall(types.DirUp)
	case "down":
		req = types.NewDirectionCall(types.DirDown)
	default:
		floor, err := strconv.Atoi(fields[1])
		if err != nil {
			return Line{}, fmt.Errorf("%w: %q is neither up, down nor a floor", ErrSyntax, fields[1])
		}
		req = types.NewFloorSelect(floor)
	}
	return Line{Verb: Press, Command: types.Command{CarID: car, Request: req}}, nil
}

// Read parses lines from r and sends them on out until r is exhausted, a quit line is read
// or ctx is cancelled. Blank lines and lines starting with # are skipped; malformed lines are
// logged and skipped. out is closed on return.
func Read(ctx context.Context, r io.Reader, cars []string, out chan<- Line) error {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		line, err := Parse(text, cars)
		if err != nil {
			slog.Warn("Ignoring panel input", "input", text, "err", err)
			continue
		}
		slog.Debug("Panel input", "input", text)
		select {
		case out <- line:
		case <-ctx.Done():
			return nil
		}
		if line.Verb == Quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read panel input: %w", err)
	}
	return nil
}
