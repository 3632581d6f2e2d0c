package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/qubit"
)

// GGPNG renders a circuit.Circuit with the gg vector library. Unlike
// the teacher's renderer, this circuit.Op carries no precomputed
// time-step/line layout (it is pre-lowering IR, not a drawing-ready
// DAG) so GGPNG computes a simple greedy column layout itself: each
// operation is placed one column past the latest column any of its
// touched qubits already appears in.
type GGPNG struct{ Cell float64 }

// NewRenderer returns a renderer that emits lossless PNGs using gg.
func NewRenderer(cellPx int) GGPNG { return GGPNG{Cell: float64(cellPx)} }

type placedOp struct {
	op     circuit.Operation
	column int
	lines  []int // every qubit line this operation touches, sorted
}

// layout assigns a column to every operation via a per-qubit "next free
// column" cursor, the same greedy scheduling a wire diagram needs when
// all it has is operation order and touched qubits.
func layout(c circuit.Circuit) ([]placedOp, int) {
	nextFree := map[int]int{}
	out := make([]placedOp, 0, c.Len())
	maxCol := -1

	for _, op := range c.Ops() {
		lines := touchedLines(op.Operation)
		col := 0
		for _, l := range lines {
			if nextFree[l] > col {
				col = nextFree[l]
			}
		}
		for _, l := range lines {
			nextFree[l] = col + 1
		}
		if col > maxCol {
			maxCol = col
		}
		out = append(out, placedOp{op: op.Operation, column: col, lines: lines})
	}
	return out, maxCol
}

func touchedLines(op circuit.Operation) []int {
	seen := map[int]bool{}
	var lines []int
	add := func(a qubit.Addr) {
		i := int(a)
		if !seen[i] {
			seen[i] = true
			lines = append(lines, i)
		}
	}
	for _, a := range op.Targets.Addrs() {
		add(a)
	}
	if op.Kind == circuit.Controlled {
		for _, a := range op.Controls.All().Slice() {
			add(a)
		}
	}
	sortInts(lines)
	return lines
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func qubitCount(c circuit.Circuit) int {
	n := c.MaxStackTop() + 1
	for _, op := range c.Ops() {
		for _, l := range touchedLines(op.Operation) {
			if l+1 > n {
				n = l + 1
			}
		}
	}
	return n
}

func (r GGPNG) Render(c circuit.Circuit) (image.Image, error) {
	ops, maxCol := layout(c)
	steps := maxCol + 1
	if steps < 1 {
		steps = 1
	}
	qubits := qubitCount(c)
	if qubits < 1 {
		qubits = 1
	}

	w := int(float64(steps) * r.Cell)
	h := int(float64(qubits) * r.Cell)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for i := 0; i < qubits; i++ {
		y := r.y(i)
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	for _, p := range ops {
		if err := r.drawOp(dc, p); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

func (r GGPNG) Save(path string, c circuit.Circuit) error {
	img, err := r.Render(c)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (r GGPNG) x(step int) float64 { return float64(step)*r.Cell + r.Cell/2 }
func (r GGPNG) y(line int) float64 { return float64(line)*r.Cell + r.Cell/2 }

func (r GGPNG) drawOp(dc *gg.Context, p placedOp) error {
	if p.op.Kind == circuit.Controlled {
		r.drawControlled(dc, p)
		return nil
	}

	switch p.op.Gate.Name() {
	case "SWP":
		return r.drawSwap(dc, p)
	default:
		if p.op.Targets.Len() == 1 {
			r.drawBoxGate(dc, p.op.Gate.DrawSymbol(), p.column, p.lines[0])
			return nil
		}
		// Multi-target elementary gate with no dedicated glyph (e.g. a
		// material multi-qubit Unitary/Custom): box every touched line.
		for _, l := range p.lines {
			r.drawBoxGate(dc, p.op.Gate.DrawSymbol(), p.column, l)
		}
		return nil
	}
}

func (r GGPNG) drawBoxGate(dc *gg.Context, symbol string, col, line int) {
	x, y := r.x(col), r.y(line)
	size := r.Cell * .7
	dc.DrawRectangle(x-size/2, y-size/2, size, size)
	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.DrawStringAnchored(symbol, x, y, 0.5, 0.5)
}

// drawControlled draws every control qubit as a dot (filled for a
// positive control, hollow for a negative one), a vertical line
// spanning every touched qubit, and the guarded gate on its target
// line(s) — an ⊕ bubble for X (the CNOT/Toffoli convention) or a boxed
// symbol otherwise.
func (r GGPNG) drawControlled(dc *gg.Context, p placedOp) {
	x := r.x(p.column)
	minLine, maxLine := p.lines[0], p.lines[0]
	for _, l := range p.lines {
		if l < minLine {
			minLine = l
		}
		if l > maxLine {
			maxLine = l
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawLine(x, r.y(minLine), x, r.y(maxLine))
	dc.Stroke()

	for _, a := range p.op.Controls.Ones().Slice() {
		dc.DrawCircle(x, r.y(int(a)), r.Cell*0.12)
		dc.Fill()
	}
	for _, a := range p.op.Controls.Zeros().Slice() {
		dc.DrawCircle(x, r.y(int(a)), r.Cell*0.12)
		dc.Stroke()
	}

	for _, a := range p.op.Targets.Addrs() {
		targetY := r.y(int(a))
		if p.op.Gate.Name() == "X" {
			dc.DrawCircle(x, targetY, r.Cell*0.18)
			dc.Stroke()
			dc.DrawLine(x-r.Cell*0.18, targetY, x+r.Cell*0.18, targetY)
			dc.Stroke()
			dc.DrawLine(x, targetY-r.Cell*0.18, x, targetY+r.Cell*0.18)
			dc.Stroke()
		} else {
			r.drawBoxGate(dc, p.op.Gate.DrawSymbol(), p.column, int(a))
		}
	}
}

func (r GGPNG) drawSwap(dc *gg.Context, p placedOp) error {
	if len(p.lines) != 2 {
		return fmt.Errorf("renderer: SWP op at column %d does not span exactly 2 qubits: %v", p.column, p.lines)
	}
	x := r.x(p.column)
	y1, y2 := r.y(p.lines[0]), r.y(p.lines[1])

	dc.SetRGB(0, 0, 0)
	r.drawSwapCross(dc, x, y1)
	r.drawSwapCross(dc, x, y2)
	dc.SetLineWidth(1)
	dc.DrawLine(x, y1, x, y2)
	dc.Stroke()
	return nil
}

func (r GGPNG) drawSwapCross(dc *gg.Context, x, y float64) {
	d := r.Cell * 0.18
	dc.DrawLine(x-d, y-d, x+d, y+d)
	dc.Stroke()
	dc.DrawLine(x-d, y+d, x+d, y-d)
	dc.Stroke()
}
