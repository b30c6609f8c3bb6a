package host

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/go-drift/fadenav/pkg/graphics"
)

// termCanvas flattens paint commands into styled terminal rows. Layer alpha
// is applied by blending each text color toward the current background.
type termCanvas struct {
	alpha      []float64
	background graphics.Color
	painted    bool
	rows       []row
}

type row struct {
	text  string
	color graphics.Color
}

func newTermCanvas() *termCanvas {
	return &termCanvas{alpha: []float64{1}, background: graphics.ColorWhite}
}

func (c *termCanvas) opacity() float64 {
	return c.alpha[len(c.alpha)-1]
}

func (c *termCanvas) SaveLayerAlpha(alpha float64) {
	c.alpha = append(c.alpha, c.opacity()*alpha)
}

func (c *termCanvas) Restore() {
	if len(c.alpha) > 1 {
		c.alpha = c.alpha[:len(c.alpha)-1]
	}
}

func (c *termCanvas) DrawSurface(color graphics.Color) {
	opaque := color.WithAlpha(1)
	if !c.painted {
		c.background = graphics.Lerp(graphics.ColorWhite, opaque, color.Alpha()*c.opacity())
		c.painted = true
		return
	}
	c.background = graphics.Lerp(c.background, opaque, color.Alpha()*c.opacity())
}

func (c *termCanvas) DrawText(text string, color graphics.Color) {
	c.rows = append(c.rows, row{
		text:  text,
		color: graphics.Lerp(c.background, color.WithAlpha(1), color.Alpha()*c.opacity()),
	})
}

// render paints list into a block of width columns and height rows, with
// footer on the last row.
func render(list *graphics.DisplayList, width, height int, footer string) string {
	c := newTermCanvas()
	list.Paint(c)

	base := lipgloss.NewStyle().
		Background(lipgloss.Color(c.background.Hex())).
		Padding(0, 2)
	if width > 0 {
		base = base.Width(width)
	}

	lines := []string{base.Render("")}
	for _, r := range c.rows {
		lines = append(lines, base.Foreground(lipgloss.Color(r.color.Hex())).Render(r.text))
	}
	for height > 0 && len(lines) < height-1 {
		lines = append(lines, base.Render(""))
	}
	if footer != "" {
		lines = append(lines, footer)
	}
	return strings.Join(lines, "\n")
}
