package recdeck

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts resolves text faces by size from a scalable TTF source. The 7x13
// bitmap face is kept only as a last resort when no source could be parsed;
// it covers ASCII, so accented captions lose their diacritics there.
type Fonts struct {
	source   *text.GoTextFaceSource
	fallback text.Face
	faces    map[float64]*text.GoTextFace
}

// DefaultFonts returns the embedded Go Regular font set, which covers the
// Latin-1 accents the deck's captions use.
func DefaultFonts() *Fonts {
	f, err := LoadFonts(goregular.TTF)
	if err != nil {
		return bitmapFonts()
	}
	return f
}

func bitmapFonts() *Fonts {
	return &Fonts{fallback: text.NewGoXFace(basicfont.Face7x13)}
}

// LoadFonts parses TTF/OTF data into a scalable font set.
func LoadFonts(ttfData []byte) (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("recdeck: failed to parse TTF data: %w", err)
	}
	f := bitmapFonts()
	f.source = source
	f.faces = make(map[float64]*text.GoTextFace)
	return f, nil
}

// LoadFontsFile reads and parses a TTF/OTF file.
func LoadFontsFile(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recdeck: read font %s: %w", path, err)
	}
	return LoadFonts(data)
}

// Scalable reports whether a TTF source is loaded.
func (f *Fonts) Scalable() bool {
	return f.source != nil
}

// Face returns a face for the given pixel size.
func (f *Fonts) Face(size float64) text.Face {
	if f.source == nil {
		return f.fallback
	}
	// Quantise to half pixels so tweened sizes don't grow the cache.
	size = math.Round(size*2) / 2
	if size <= 0 {
		size = 1
	}
	face, ok := f.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: f.source, Size: size}
		f.faces[size] = face
	}
	return face
}

func primaryAlign(a TextAlign) text.Align {
	switch a {
	case TextAlignLeft:
		return text.AlignStart
	case TextAlignCenter:
		return text.AlignCenter
	case TextAlignRight:
		return text.AlignEnd
	}
	return text.AlignStart
}
