package bio

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// InterCellFraction is the gap added to every seed position, as a fraction of
// the radius.
const InterCellFraction = 0.01

// Grid partitions the interior of a bounding box into rows (y), columns (x)
// and pages (z). Capacity always covers the requested count.
type Grid struct {
	Rows, Cols, Pages int
	RowHeight         float64
	ColWidth          float64
	PageDepth         float64
	InterCell         float64
	// Origin is the box minimum shifted inward by the radius clearance.
	Origin mgl64.Vec3
	Count  int
}

// PlanGrid sizes a grid for n objects of kind k so that its proportions follow
// the box aspect ratio.
func PlanGrid(k *Kind, n int, minP, maxP mgl64.Vec3) (Grid, error) {
	if n < 0 {
		return Grid{}, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	r := k.Radius()
	span := maxP.Sub(minP).Sub(mgl64.Vec3{2 * r, 2 * r, 2 * r})
	for axis, name := range [3]string{"x", "y", "z"} {
		if !(span[axis] > 0) {
			return Grid{}, &VolumeError{Axis: name, Span: span[axis]}
		}
	}

	g := Grid{
		InterCell: InterCellFraction * r,
		Origin:    minP.Add(mgl64.Vec3{r, r, r}),
		Count:     n,
	}
	if n == 0 {
		return g, nil
	}

	width, height, depth := span.X(), span.Y(), span.Z()
	g.Rows = ceilInt(math.Cbrt(float64(n) * height * height / (width * depth)))
	g.RowHeight = height / float64(g.Rows)
	g.Cols = ceilInt(float64(g.Rows) * width / height)
	g.ColWidth = width / float64(g.Cols)
	g.Pages = ceilInt(float64(n) / float64(g.Rows*g.Cols))
	g.PageDepth = depth / float64(g.Pages)
	return g, nil
}

func ceilInt(x float64) int {
	c := int(math.Ceil(x))
	if c < 1 {
		return 1
	}
	return c
}

func (g Grid) Capacity() int { return g.Rows * g.Cols * g.Pages }

// Position returns the seed center of index i. Cells fill a row first, then
// the rows of a page, then the next page. Offsets are measured from Origin,
// which is the box minimum plus the radius, not the box minimum itself, so
// every center stays within [min+r, max-r].
func (g Grid) Position(i int) mgl64.Vec3 {
	col := i % g.Cols
	row := i / g.Cols % g.Rows
	page := i / (g.Rows * g.Cols)
	return g.Origin.Add(mgl64.Vec3{
		float64(col)*g.ColWidth + g.ColWidth/2 + g.InterCell,
		float64(row)*g.RowHeight + g.RowHeight/2 + g.InterCell,
		float64(page)*g.PageDepth + g.PageDepth/2 + g.InterCell,
	})
}

// Undersized reports whether neighbouring seeds along some axis are closer
// than one diameter, meaning their spheres start out overlapping.
func (g Grid) Undersized(radius float64) bool {
	if g.Count == 0 {
		return false
	}
	d := 2 * radius
	return (g.Cols > 1 && g.ColWidth < d) ||
		(g.Rows > 1 && g.RowHeight < d) ||
		(g.Pages > 1 && g.PageDepth < d)
}

// MaxFit returns the largest count n <= limit whose grid in the box is not
// undersized. Undersized is not monotonic in n, so the search starts at limit
// rather than at the box capacity.
func MaxFit(k *Kind, limit int, minP, maxP mgl64.Vec3) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCount, limit)
	}
	if _, err := PlanGrid(k, 0, minP, maxP); err != nil {
		return 0, err
	}
	span := maxP.Sub(minP)
	d := 2 * k.Radius()
	// no slot can be narrower than 2r, so no more than this many can fit
	upper := 1
	for axis := 0; axis < 3; axis++ {
		upper *= int(math.Floor((span[axis]-d)/d)) + 1
	}
	for n := min(upper, limit); n > 0; n-- {
		g, err := PlanGrid(k, n, minP, maxP)
		if err != nil {
			return 0, err
		}
		if !g.Undersized(k.Radius()) {
			return n, nil
		}
	}
	return 0, nil
}

type placeOptions struct {
	clamp  bool
	logger *log.Logger
}

type PlaceOption func(*placeOptions)

// WithClamp lowers the count to MaxFit(k, numCell, ...) instead of allowing
// overlapping seeds. The count never rises.
func WithClamp() PlaceOption {
	return func(o *placeOptions) { o.clamp = true }
}

func WithLogger(l *log.Logger) PlaceOption {
	return func(o *placeOptions) { o.logger = l }
}

// Placement is the outcome of FillSpace.
type Placement struct {
	Grid      Grid
	Requested int
	Cells     []*Cell
	Warnings  []string
}

// FillSpace spreads numCell cells of kind k over the box [minP, maxP] and
// registers each with ctx. Validation happens before any cell is built, so an
// error means nothing was registered. An undersized grid is only a warning
// unless WithClamp is given.
func FillSpace(ctx Context, k *Kind, numCell int, minP, maxP mgl64.Vec3, opts ...PlaceOption) (*Placement, error) {
	o := placeOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	g, err := PlanGrid(k, numCell, minP, maxP)
	if err != nil {
		return nil, err
	}

	p := &Placement{Requested: numCell}
	if g.Undersized(k.Radius()) {
		if o.clamp {
			fit, err := MaxFit(k, numCell, minP, maxP)
			if err != nil {
				return nil, err
			}
			if g, err = PlanGrid(k, fit, minP, maxP); err != nil {
				return nil, err
			}
			msg := fmt.Sprintf("clamped %d %ss to %d to avoid overlap", numCell, k.Name(), fit)
			o.logger.Warn("placement clamped", "kind", k.Name(), "requested", numCell, "placed", fit)
			p.Warnings = append(p.Warnings, msg)
		} else {
			msg := fmt.Sprintf("grid slot %.3gx%.3gx%.3g is smaller than diameter %.3g; %ss may overlap",
				g.ColWidth, g.RowHeight, g.PageDepth, 2*k.Radius(), k.Name())
			o.logger.Warn("placement undersized",
				"kind", k.Name(), "count", numCell,
				"rows", g.Rows, "cols", g.Cols, "pages", g.Pages,
				"diameter", 2*k.Radius())
			p.Warnings = append(p.Warnings, msg)
		}
	}

	p.Grid = g
	p.Cells = make([]*Cell, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		c := NewCell(ctx, k, g.Position(i))
		ctx.AddBioObject(c)
		p.Cells = append(p.Cells, c)
	}
	return p, nil
}
