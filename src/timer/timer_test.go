package timer

import (
	"testing"
	"time"
)

func TestScheduleDeliversTokenOnce(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	s.Schedule(5*time.Millisecond, Travel)

	select {
	case tok := <-s.Timeout():
		if tok != Travel {
			t.Errorf("got token %v, want %v", tok, Travel)
		}
		if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
			t.Errorf("fired early after %v", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("token never delivered")
	}

	select {
	case tok := <-s.Timeout():
		t.Errorf("token %v delivered twice", tok)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestScheduleKeepsOrder(t *testing.T) {
	s := NewScheduler()
	s.Schedule(20*time.Millisecond, Travel)
	s.Schedule(time.Millisecond, DoorCycle)

	want := []Token{DoorCycle, Travel}
	for _, w := range want {
		select {
		case tok := <-s.Timeout():
			if tok != w {
				t.Errorf("got %v, want %v", tok, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %v", w)
		}
	}
}

func TestStopCancelsPending(t *testing.T) {
	s := NewScheduler()
	s.Schedule(10*time.Millisecond, DoorCycle)
	s.Stop()

	select {
	case tok := <-s.Timeout():
		t.Errorf("stopped timer delivered %v", tok)
	case <-time.After(40 * time.Millisecond):
	}
}
