package panel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"twinlift/src/types"
)

var cars = []string{"left", "right"}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Line
	}{
		{"left up", Line{Verb: Press, Command: types.Command{CarID: "left", Request: types.NewDirectionCall(types.DirUp)}}},
		{"RIGHT Down", Line{Verb: Press, Command: types.Command{CarID: "right", Request: types.NewDirectionCall(types.DirDown)}}},
		{"left 5", Line{Verb: Press, Command: types.Command{CarID: "left", Request: types.NewFloorSelect(5)}}},
		{"right 42", Line{Verb: Press, Command: types.Command{CarID: "right", Request: types.NewFloorSelect(42)}}},
		{"state", Line{Verb: ShowState}},
		{"state right", Line{Verb: ShowState, Command: types.Command{CarID: "right"}}},
		{"quit", Line{Verb: Quit}},
		{"exit", Line{Verb: Quit}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, cars)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrSyntax},
		{"left", ErrSyntax},
		{"left sideways", ErrSyntax},
		{"left up now", ErrSyntax},
		{"middle up", ErrUnknownCar},
		{"state middle", ErrUnknownCar},
		{"state left right", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := Parse(tt.in, cars); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestReadSkipsNoiseAndStopsAtQuit(t *testing.T) {
	input := strings.Join([]string{
		"# morning rush",
		"left up",
		"",
		"bogus line here",
		"left 4",
		"quit",
		"right up",
	}, "\n")
	out := make(chan Line, 10)
	if err := Read(context.Background(), strings.NewReader(input), cars, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []Line
	for line := range out {
		got = append(got, line)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(got), got)
	}
	if got[0].Command.Request != types.NewDirectionCall(types.DirUp) ||
		got[1].Command.Request != types.NewFloorSelect(4) ||
		got[2].Verb != Quit {
		t.Errorf("unexpected lines: %+v", got)
	}
}

func TestReadStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan Line) // never drained
	if err := Read(ctx, strings.NewReader("left up\nleft 3\n"), cars, out); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, ok := <-out; ok {
		t.Error("out not closed")
	}
}
