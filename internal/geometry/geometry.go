// Package geometry holds the small amount of 2D math the layout engine
// needs: points, axis-aligned rectangles, segment intersection and text
// wrapping against a caller-supplied width function.
package geometry

import (
	"math"
	"strings"
)

// Point is a position in world or screen units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the rectangle spanned by two corners in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and o share any area or edge.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Edges returns the four sides of r as segments: top, right, bottom, left.
func (r Rect) Edges() [4][2]Point {
	tl := Point{r.X, r.Y}
	tr := Point{r.Right(), r.Y}
	br := Point{r.Right(), r.Bottom()}
	bl := Point{r.X, r.Bottom()}
	return [4][2]Point{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

const epsilon = 1e-9

// orientation returns 0 for collinear points, 1 for clockwise and 2 for
// counter-clockwise turns.
func orientation(p, q, r Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if math.Abs(v) < epsilon {
		return 0
	}
	if v > 0 {
		return 1
	}
	return 2
}

func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1-q1 crosses or touches p2-q2.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && onSegment(p1, p2, q1)) ||
		(o2 == 0 && onSegment(p1, q2, q1)) ||
		(o3 == 0 && onSegment(p2, p1, q2)) ||
		(o4 == 0 && onSegment(p2, q1, q2))
}

// SegmentIntersection returns the crossing point of two segments. Parallel
// segments report false even when they overlap.
func SegmentIntersection(p1, q1, p2, q2 Point) (Point, bool) {
	d := (q1.X-p1.X)*(q2.Y-p2.Y) - (q1.Y-p1.Y)*(q2.X-p2.X)
	if math.Abs(d) < epsilon {
		return Point{}, false
	}
	t := ((p2.X-p1.X)*(q2.Y-p2.Y) - (p2.Y-p1.Y)*(q2.X-p2.X)) / d
	u := ((p2.X-p1.X)*(q1.Y-p1.Y) - (p2.Y-p1.Y)*(q1.X-p1.X)) / d
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return Point{}, false
	}
	return Point{X: p1.X + t*(q1.X-p1.X), Y: p1.Y + t*(q1.Y-p1.Y)}, true
}

// LineRectIntersection returns the point where segment p1-p2 crosses the
// border of r closest to p1.
func LineRectIntersection(p1, p2 Point, r Rect) (Point, bool) {
	var best Point
	found := false
	bestDist := math.Inf(1)
	for _, e := range r.Edges() {
		pt, ok := SegmentIntersection(p1, p2, e[0], e[1])
		if !ok {
			continue
		}
		if d := p1.Dist(pt); d < bestDist {
			best, bestDist, found = pt, d, true
		}
	}
	return best, found
}

// WidthFunc measures the rendered width of a string.
type WidthFunc func(s string) float64

// WrapText breaks text on spaces so that no line is wider than maxWidth,
// except single words that are wider on their own.
func WrapText(text string, maxWidth float64, width WidthFunc) []string {
	if text == "" {
		return []string{""}
	}
	if width(text) < maxWidth {
		return []string{text}
	}
	words := strings.Split(text, " ")
	var lines []string
	line := ""
	for i, w := range words {
		test := w
		if line != "" {
			test = line + " " + w
		}
		if width(test) > maxWidth && i > 0 {
			lines = append(lines, line)
			line = w
		} else {
			line = test
		}
	}
	return append(lines, line)
}
