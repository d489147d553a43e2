// Package fonts resolves TrueType fonts for label text.
//
// A preferred font is looked up on the host by file name (for example
// "arial.ttf") and parsed. When it is missing or unreadable the built-in Go
// Regular font is used instead, so resolution never fails. Parsed fonts are
// cached for the life of the process.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultName is the preferred label font.
const DefaultName = "arial.ttf"

// Source records which path font resolution took.
type Source string

const (
	SourcePreferred Source = "preferred"
	SourceFallback  Source = "fallback"
)

// Resolved is a parsed font at a fixed pixel size.
//
// The parsed Font is shared and safe for concurrent use. Faces are not, so
// callers obtain a fresh one per drawing goroutine with NewFace.
type Resolved struct {
	Font   *truetype.Font
	Size   float64
	Source Source
	Path   string // host file; empty for the fallback
}

// NewFace returns a new face for the resolved font. Size is in pixels.
func (r Resolved) NewFace() font.Face {
	return truetype.NewFace(r.Font, &truetype.Options{
		Size:    r.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Resolve finds name on the host at size pixels, falling back to Go Regular.
func Resolve(name string, size float64) Resolved {
	if name != "" {
		if path, f, err := preferred(name); err == nil {
			return Resolved{Font: f, Size: size, Source: SourcePreferred, Path: path}
		}
	}
	return Fallback(size)
}

// Fallback returns the built-in font at size pixels.
func Fallback(size float64) Resolved {
	return Resolved{Font: fallback(), Size: size, Source: SourceFallback}
}

// =============================================================================
// Caches
// =============================================================================

var (
	fallbackOnce sync.Once
	fallbackFont *truetype.Font

	hostMu    sync.Mutex
	hostFonts = map[string]hostEntry{}
)

type hostEntry struct {
	path string
	font *truetype.Font
	err  error
}

func fallback() *truetype.Font {
	fallbackOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic("fonts: built-in font is corrupt: " + err.Error())
		}
		fallbackFont = f
	})
	return fallbackFont
}

// preferred locates and parses name, remembering failures as well as hits.
func preferred(name string) (string, *truetype.Font, error) {
	hostMu.Lock()
	defer hostMu.Unlock()

	if e, ok := hostFonts[name]; ok {
		return e.path, e.font, e.err
	}

	e := load(name)
	hostFonts[name] = e
	return e.path, e.font, e.err
}

func load(name string) hostEntry {
	path, err := findfont.Find(name)
	if err != nil {
		return hostEntry{err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return hostEntry{path: path, err: err}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return hostEntry{path: path, err: err}
	}
	return hostEntry{path: path, font: f}
}
