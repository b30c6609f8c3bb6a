package testing

import (
	"testing"
	"time"

	"github.com/go-drift/fadenav/pkg/animation"
)

func TestFakeClockAdvanceDoesNotCountFrames(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)

	if got := clk.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("Now moved %v, want 100ms", got)
	}
	if clk.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", clk.Frames())
	}
}

func TestFakeClockStep(t *testing.T) {
	clk := NewFakeClock()
	for range 3 {
		clk.Step()
	}
	if clk.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", clk.Frames())
	}
	if clk.Elapsed() != 3*FrameDuration {
		t.Errorf("Elapsed = %v, want %v", clk.Elapsed(), 3*FrameDuration)
	}
}

func TestWidgetTesterInstallsClock(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	clk := tester.Clock()

	if !animation.Now().Equal(clk.Now()) {
		t.Fatal("animation clock should be the tester's fake clock")
	}
	clk.Advance(500 * time.Millisecond)
	if clk.Elapsed() != 500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 500ms", clk.Elapsed())
	}
}
