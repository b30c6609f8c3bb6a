package widgets

import (
	"testing"

	"github.com/go-drift/fadenav/pkg/core"
	"github.com/go-drift/fadenav/pkg/graphics"
)

func paint(w core.Widget) string {
	return core.Record(core.MountRoot(w, core.NewBuildOwner())).String()
}

func TestSurfaceWithoutChild(t *testing.T) {
	got := paint(Surface{Color: graphics.ColorPaleCyan})
	if want := "surface(#F0FCFE)"; got != want {
		t.Errorf("paint = %q, want %q", got, want)
	}
}

func TestTransparentSurfaceSkipsFill(t *testing.T) {
	got := paint(Surface{Child: Text{Content: "hi"}})
	if want := `text("hi", #000000)`; got != want {
		t.Errorf("paint = %q, want %q", got, want)
	}
}

func TestOpacityLayers(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		want    string
	}{
		{"hidden", 0, ""},
		{"partial", 0.25, `layer(alpha=0.25) text("a", #000000) restore`},
		{"opaque", 1, `text("a", #000000)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paint(Opacity{Opacity: tt.opacity, Child: Text{Content: "a"}})
			if got != tt.want {
				t.Errorf("paint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColumnPaintsInOrderAndSkipsNil(t *testing.T) {
	got := paint(ColumnOf(Text{Content: "a"}, nil, Text{Content: "b", Color: graphics.ColorWhite}))
	want := `text("a", #000000) text("b", #FFFFFF)`
	if got != want {
		t.Errorf("paint = %q, want %q", got, want)
	}
}
