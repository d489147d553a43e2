package geometry

import (
	"math"
	"sort"
	"strings"
)

// Paper is a page size in points.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Common paper sizes (portrait).
var (
	A4     = Paper{Name: "a4", Width: 595.2755905511812, Height: 841.8897637795277}
	A5     = Paper{Name: "a5", Width: 419.5275590551181, Height: 595.2755905511812}
	Letter = Paper{Name: "letter", Width: 612, Height: 792}
	Legal  = Paper{Name: "legal", Width: 612, Height: 1008}
)

var papers = map[string]Paper{
	A4.Name:     A4,
	A5.Name:     A5,
	Letter.Name: Letter,
	Legal.Name:  Legal,
}

// PaperByName looks up a paper size, ignoring case.
func PaperByName(name string) (Paper, bool) {
	p, ok := papers[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// PaperNames returns the known paper names, sorted.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for n := range papers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PaperFor returns the known paper size matching width x height to within
// half a point.
func PaperFor(width, height float64) (Paper, bool) {
	for _, name := range PaperNames() {
		p := papers[name]
		if math.Abs(p.Width-width) < 0.5 && math.Abs(p.Height-height) < 0.5 {
			return p, true
		}
	}
	return Paper{}, false
}

// UnitByName returns the size of unit in points. Supported: pt, in, mm.
func UnitByName(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "pt":
		return Point, true
	case "in", "inch":
		return Inch, true
	case "mm":
		return MM, true
	}
	return 0, false
}
