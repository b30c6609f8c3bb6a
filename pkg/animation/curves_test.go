package animation

import (
	"math"
	"testing"
)

func TestCubicBezierEndpoints(t *testing.T) {
	for name, curve := range map[string]Curve{"ease": Ease, "ease-in": EaseIn, "ease-out": EaseOut, "ease-in-out": EaseInOut} {
		if curve(0) != 0 || curve(1) != 1 {
			t.Errorf("%s endpoints = %v, %v", name, curve(0), curve(1))
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		if v+1e-9 < prev {
			t.Fatalf("Ease not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestEaseInOutSymmetric(t *testing.T) {
	if v := EaseInOut(0.5); math.Abs(v-0.5) > 1e-4 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", v)
	}
}

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"linear", "ease", "Ease-In", "ease-out", "ease-in-out", ""} {
		if _, ok := CurveByName(name); !ok {
			t.Errorf("CurveByName(%q) not found", name)
		}
	}
	if _, ok := CurveByName("bounce"); ok {
		t.Error("CurveByName(bounce) should fail")
	}
}
