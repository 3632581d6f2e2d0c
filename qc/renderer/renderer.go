// Package renderer turns a lowered or pre-lowering circuit.Circuit
// into an image, purely as a debugging aid — analogous to the
// teacher's own use of it, kept per "ambient stack regardless of
// non-goals" since this system's spec explicitly excludes any GUI but
// not a diagnostic PNG dump.
package renderer

import (
	"image"
	"image/color"

	"github.com/kegliz/qivm/circuit"
)

// Renderer turns a circuit into an immutable image. Strategy pattern
// lets this package host multiple renderers (PNG today, ASCII/SVG
// later) behind one interface.
type Renderer interface {
	Render(c circuit.Circuit) (image.Image, error)
}

// Default size & look-n-feel knobs.
var (
	WireColor  = color.Black
	GateFill   = color.White
	GateStroke = color.Black
)
