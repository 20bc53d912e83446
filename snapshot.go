package recdeck

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Snapshot queues a labeled SVG snapshot of the tree, written to SnapshotDir
// at the end of the next Draw, or immediately by FlushSnapshots in headless
// runs.
func (s *Scene) Snapshot(label string) {
	s.snapshotQueue = append(s.snapshotQueue, label)
}

// FlushSnapshots writes every queued snapshot. Headless callers (scripts run
// without a window) call it after each Update.
func (s *Scene) FlushSnapshots() {
	s.flushSnapshots()
}

func (s *Scene) flushSnapshots() {
	if len(s.snapshotQueue) == 0 {
		return
	}
	for _, label := range s.snapshotQueue {
		path := filepath.Join(s.SnapshotDir, sanitizeLabel(label)+".svg")
		if err := s.SaveSVG(path); err != nil {
			s.log.Warn().Err(err).Str("label", label).Msg("snapshot failed")
		}
	}
	s.snapshotQueue = s.snapshotQueue[:0]
}

// SaveSVG writes the current tree to path as an SVG document, creating the
// parent directory if needed.
func (s *Scene) SaveSVG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WriteSVG(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteSVG renders the current tree as SVG. Transforms are refreshed first,
// so the output reflects every mutation made so far.
func (s *Scene) WriteSVG(w io.Writer) error {
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(int(s.width), int(s.height))
	canvas.Rect(0, 0, int(s.width), int(s.height), "fill:"+hexColor(s.ClearColor))
	writeSVGNode(canvas, s.root, 1)
	canvas.End()
	return ew.err
}

func writeSVGNode(canvas *svg.SVG, n *Node, parentAlpha float64) {
	if !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	w := n.world
	switch n.Shape {
	case ShapeContainer:
	case ShapeCircle:
		cx, cy := w.apply(0, 0)
		canvas.Circle(iround(cx), iround(cy), iround(n.Radius*w.sx), shapeStyle(n, alpha, w.sx))
	case ShapeRect:
		x0, y0 := 0.0, 0.0
		if n.Centered {
			x0, y0 = -n.Width/2, -n.Height/2
		}
		x, y := w.apply(x0, y0)
		canvas.Rect(iround(x), iround(y), iround(n.Width*w.sx), iround(n.Height*w.sy), shapeStyle(n, alpha, w.sx))
	case ShapeLine:
		x1, y1 := w.apply(0, 0)
		x2, y2 := w.apply(n.LineEnd.X, n.LineEnd.Y)
		canvas.Line(iround(x1), iround(y1), iround(x2), iround(y2), shapeStyle(n, alpha, w.sx))
	case ShapeText:
		x, y := w.apply(0, 0)
		lines := strings.Split(n.Text, "\n")
		lh := n.FontSize * w.sy * 1.3
		top := y - lh*float64(len(lines)-1)/2
		for i, line := range lines {
			canvas.Text(iround(x), iround(top+lh*float64(i)), line, textStyle(n, alpha, w.sy))
		}
	}
	for _, child := range n.children {
		writeSVGNode(canvas, child, alpha)
	}
}

func shapeStyle(n *Node, alpha, scale float64) string {
	var b strings.Builder
	if n.Fill.A > 0 && n.Shape != ShapeLine {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%.3g;", hexColor(n.Fill), n.Fill.A*alpha)
	} else {
		b.WriteString("fill:none;")
	}
	if n.StrokeWidth > 0 && n.Stroke.A > 0 {
		fmt.Fprintf(&b, "stroke:%s;stroke-opacity:%.3g;stroke-width:%.3g;",
			hexColor(n.Stroke), n.Stroke.A*alpha, n.StrokeWidth*scale)
		if n.Dash > 0 {
			fmt.Fprintf(&b, "stroke-dasharray:%.3g,%.3g;", n.Dash*scale, n.Dash*scale)
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

func textStyle(n *Node, alpha, scale float64) string {
	anchor := "start"
	switch n.Align {
	case TextAlignLeft:
	case TextAlignCenter:
		anchor = "middle"
	case TextAlignRight:
		anchor = "end"
	}
	weight := "normal"
	if n.Bold {
		weight = "bold"
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g;font-size:%.3gpx;font-weight:%s;text-anchor:%s;dominant-baseline:middle",
		hexColor(n.Fill), n.Fill.A*alpha, n.FontSize*scale, weight, anchor)
}

func hexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
}

func iround(v float64) int {
	return int(math.Round(v))
}

// errWriter remembers the first write error; svgo itself ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
