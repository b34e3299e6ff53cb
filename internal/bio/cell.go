package bio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type Cell struct {
	physical
}

// NewCell builds a cell body at origin, gives it a random initial velocity and
// the buoyant gravity of its kind, and takes the next id from ctx. The cell is
// not registered; FillSpace does that.
func NewCell(ctx Context, kind *Kind, origin mgl64.Vec3) *Cell {
	return &Cell{physical: newPhysical(ctx, kind, origin)}
}

// Update perturbs the cell's velocity by a random increment.
func (c *Cell) Update(r Random) {
	c.perturb(r)
}

func (c *Cell) Collided(other Object) {
	switch o := other.(type) {
	case *Cell:
		c.collidedCell(o)
	case *Molecule:
		c.collidedMolecule(o)
	}
}

// Cell-cell and cell-molecule contacts currently have no effect.
func (c *Cell) collidedCell(*Cell)         {}
func (c *Cell) collidedMolecule(*Molecule) {}

func (c *Cell) String() string {
	return fmt.Sprintf("I am cell %d", c.id)
}

func (*Cell) bioObject() {}
