package bio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type Molecule struct {
	physical
}

func NewMolecule(ctx Context, kind *Kind, origin mgl64.Vec3) *Molecule {
	return &Molecule{physical: newPhysical(ctx, kind, origin)}
}

func (m *Molecule) Update(r Random) {
	m.perturb(r)
}

// Collided is a no-op: molecules do not react to contacts.
func (m *Molecule) Collided(Object) {}

func (m *Molecule) String() string {
	return fmt.Sprintf("I am molecule %d", m.id)
}

func (*Molecule) bioObject() {}
