// Package termview draws an evergreen scene and its gesture overlay on a
// terminal with tcell. Points become glyphs on a cell grid; colors use
// 24-bit terminal color where available.
package termview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
)

// Cell is one terminal cell. A zero Rune is empty.
type Cell struct {
	Rune  rune
	Color evergreen.Color
	// Level is the cell brightness in [0,1]; it scales Color on output.
	Level float64
}

// Grid is a w×h buffer of cells.
type Grid struct {
	W, H  int
	Cells []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

// Resize reallocates the grid and clears it.
func (g *Grid) Resize(w, h int) {
	g.W, g.H = max(w, 0), max(h, 0)
	g.Cells = make([]Cell, g.W*g.H)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	clear(g.Cells)
}

// At returns the cell at (x, y). Out of range gives an empty cell.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return Cell{}
	}
	return g.Cells[y*g.W+x]
}

// Set writes a cell. With add set, a dimmer cell never replaces a brighter
// one, which approximates additive blending on a glyph grid.
func (g *Grid) Set(x, y int, r rune, c evergreen.Color, level float64, add bool) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H || level <= 0 {
		return
	}
	cell := &g.Cells[y*g.W+x]
	if add && cell.Rune != 0 && cell.Level > level {
		return
	}
	*cell = Cell{Rune: r, Color: c, Level: min(level, 1)}
}

// Text writes s starting at (x, y).
func (g *Grid) Text(x, y int, s string, c evergreen.Color, level float64) {
	for _, r := range s {
		if r != ' ' {
			g.Set(x, y, r, c, level, false)
		}
		x++
	}
}

// Style returns the tcell style for c.
func (c Cell) Style() tcell.Style {
	k := c.Level * c.Color.A
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(channel(c.Color.R*k), channel(c.Color.G*k), channel(c.Color.B*k))).
		Background(tcell.ColorBlack)
}

func channel(v float64) int32 {
	return int32(min(max(v, 0), 1)*255 + 0.5)
}

// Flush copies non-empty cells onto screen. With blank set, empty cells are
// cleared to spaces first.
func (g *Grid) Flush(screen tcell.Screen, blank bool) {
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := range g.H {
		for x := range g.W {
			c := g.Cells[y*g.W+x]
			switch {
			case c.Rune != 0:
				screen.SetContent(x, y, c.Rune, nil, c.Style())
			case blank:
				screen.SetContent(x, y, ' ', nil, bg)
			}
		}
	}
}
