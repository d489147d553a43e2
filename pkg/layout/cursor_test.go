package layout

import (
	"testing"

	"github.com/matzehuels/labelsheet/pkg/geometry"
)

func TestCursorTracksCell(t *testing.T) {
	g := geometry.Avery5160Compact.Geometry
	c := NewCursor(g)

	for i := 0; i < 3*g.Capacity()+7; i++ {
		x, y := g.Cell(i)
		if !near(c.X, x) || !near(c.Y, y) {
			t.Fatalf("index %d: cursor (%v, %v), cell (%v, %v)", i, c.X, c.Y, x, y)
		}
		if c.Index != i {
			t.Fatalf("Index = %d, want %d", c.Index, i)
		}

		full := c.Advance()
		if want := (i+1)%g.Capacity() == 0; full != want {
			t.Fatalf("index %d: Advance() = %v, want %v", i, full, want)
		}
		if full && c.PlacedOnPage != 0 {
			t.Fatalf("PlacedOnPage = %d after page filled", c.PlacedOnPage)
		}
	}
}

func TestCursorRowWrap(t *testing.T) {
	g := geometry.Geometry{
		LabelWidth: 10, LabelHeight: 5,
		Columns: 2, Rows: 2,
		LeftMargin: 1, TopMargin: 2,
		PageWidth: 30, PageHeight: 20,
	}
	c := NewCursor(g)

	steps := []struct {
		x, y float64
		full bool
	}{
		{11, 13, false}, // after slot 0
		{1, 8, false},   // row wrap
		{11, 8, false},
		{1, 13, true}, // page wrap back to origin
	}
	if c.X != 1 || c.Y != 13 {
		t.Fatalf("origin = (%v, %v)", c.X, c.Y)
	}
	for i, s := range steps {
		full := c.Advance()
		if c.X != s.x || c.Y != s.y || full != s.full {
			t.Errorf("step %d: (%v, %v, %v), want (%v, %v, %v)", i, c.X, c.Y, full, s.x, s.y, s.full)
		}
	}
}
