package geom

// Command identifies one path-construction instruction. Each Command
// consumes a fixed number of entries from Data.Coords, listed below.
type Command byte

const (
	CmdMoveTo Command = iota // 1 coord:  destination
	CmdLineTo                // 1 coord:  destination
	CmdQuadTo                // 2 coords: control, destination
	CmdCubeTo                // 3 coords: control1, control2, destination
	CmdClose                 // 0 coords: line back to the current subpath's start
)

// Data is a path as a flat command/coordinate stream: the representation
// shared by path construction (§4.5), the rasterizer's edge collector and
// the stroke expander, so that a path built once is walked identically by
// both. There is deliberately no separate iterator-closure type — a single
// struct, indexed directly, is enough for every consumer in this module.
type Data struct {
	Cmds   []Command
	Coords []Vec2
}

// NewData returns an empty path ready for building.
func NewData() *Data {
	return &Data{}
}

// MoveTo starts a new subpath at p. It returns d so calls can be chained.
func (d *Data) MoveTo(p Vec2) *Data {
	d.Cmds = append(d.Cmds, CmdMoveTo)
	d.Coords = append(d.Coords, p)
	return d
}

// LineTo appends a straight segment to p. It returns d so calls can be chained.
func (d *Data) LineTo(p Vec2) *Data {
	d.Cmds = append(d.Cmds, CmdLineTo)
	d.Coords = append(d.Coords, p)
	return d
}

// QuadTo appends a quadratic Bézier segment with control point ctrl.
// It returns d so calls can be chained.
func (d *Data) QuadTo(ctrl, p Vec2) *Data {
	d.Cmds = append(d.Cmds, CmdQuadTo)
	d.Coords = append(d.Coords, ctrl, p)
	return d
}

// CubeTo appends a cubic Bézier segment with control points ctrl1, ctrl2.
// It returns d so calls can be chained.
func (d *Data) CubeTo(ctrl1, ctrl2, p Vec2) *Data {
	d.Cmds = append(d.Cmds, CmdCubeTo)
	d.Coords = append(d.Coords, ctrl1, ctrl2, p)
	return d
}

// Close closes the current subpath with a straight line back to its start.
// It returns d so calls can be chained.
func (d *Data) Close() *Data {
	d.Cmds = append(d.Cmds, CmdClose)
	return d
}

// Reset empties d so its backing arrays can be reused.
func (d *Data) Reset() {
	d.Cmds = d.Cmds[:0]
	d.Coords = d.Coords[:0]
}

// IsEmpty reports whether d has no commands.
func (d *Data) IsEmpty() bool {
	return len(d.Cmds) == 0
}

// NumCoords returns how many Coords entries cmd consumes.
func NumCoords(cmd Command) int {
	switch cmd {
	case CmdMoveTo, CmdLineTo:
		return 1
	case CmdQuadTo:
		return 2
	case CmdCubeTo:
		return 3
	default: // CmdClose
		return 0
	}
}

// Bounds returns the bounding box of all coordinates in d's control
// polygon (not the tight curve bounds — sufficient for broad-phase
// clipping and cache-key purposes).
func (d *Data) Bounds() (r Rect, ok bool) {
	if len(d.Coords) == 0 {
		return Rect{}, false
	}
	r = Rect{LLx: d.Coords[0].X, LLy: d.Coords[0].Y, URx: d.Coords[0].X, URy: d.Coords[0].Y}
	for _, c := range d.Coords[1:] {
		r.LLx = min(r.LLx, c.X)
		r.LLy = min(r.LLy, c.Y)
		r.URx = max(r.URx, c.X)
		r.URy = max(r.URy, c.Y)
	}
	return r, true
}
