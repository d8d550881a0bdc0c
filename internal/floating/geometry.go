package floating

// Point is a position in host surface coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Rect describes a rectangular region in host surface coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// MaxY returns the bottom edge of r.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// WithCenter returns r moved so its midpoint is c.
func (r Rect) WithCenter(c Point) Rect {
	r.X = c.X - r.Width/2
	r.Y = c.Y - r.Height/2
	return r
}

type geometryKind int

const (
	geometryAuto geometryKind = iota
	geometrySize
	geometryFrame
)

// Geometry is the caller's placement request for a window. It is resolved
// once, when the window is presented.
type Geometry struct {
	kind  geometryKind
	frame Rect
	size  Size
}

// AutoGeometry leaves both position and size to the defaults.
func AutoGeometry() Geometry { return Geometry{kind: geometryAuto} }

// SizeOnly requests a size and lets the window be auto-positioned.
func SizeOnly(s Size) Geometry { return Geometry{kind: geometrySize, size: s} }

// Frame requests an explicit frame.
func Frame(r Rect) Geometry { return Geometry{kind: geometryFrame, frame: r} }

// Placement holds the defaults used to resolve geometry that does not
// carry an explicit frame.
type Placement struct {
	Origin Point
	Size   Size
}

// DefaultPlacement matches the stock auto-position frame (50,100,200,350).
func DefaultPlacement() Placement {
	return Placement{
		Origin: Point{X: 50, Y: 100},
		Size:   Size{Width: 200, Height: 350},
	}
}

// Resolve turns g into a concrete frame.
func (g Geometry) Resolve(p Placement) Rect {
	switch g.kind {
	case geometryFrame:
		return g.frame
	case geometrySize:
		return Rect{X: p.Origin.X, Y: p.Origin.Y, Width: g.size.Width, Height: g.size.Height}
	default:
		return Rect{X: p.Origin.X, Y: p.Origin.Y, Width: p.Size.Width, Height: p.Size.Height}
	}
}
