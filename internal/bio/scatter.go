package bio

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Scatter places n molecules of kind k at uniformly random centers inside the
// box, keeping the radius clearance. Molecules may overlap each other and any
// placed cells. Nothing is registered on error.
func Scatter(ctx Context, k *Kind, n int, minP, maxP mgl64.Vec3) ([]*Molecule, error) {
	g, err := PlanGrid(k, 0, minP, maxP)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrInvalidCount
	}

	span := maxP.Sub(minP).Sub(mgl64.Vec3{2 * k.radius, 2 * k.radius, 2 * k.radius})
	mols := make([]*Molecule, 0, n)
	for i := 0; i < n; i++ {
		p := g.Origin.Add(mgl64.Vec3{
			ctx.Float64() * span.X(),
			ctx.Float64() * span.Y(),
			ctx.Float64() * span.Z(),
		})
		m := NewMolecule(ctx, k, p)
		ctx.AddBioObject(m)
		mols = append(mols, m)
	}
	return mols, nil
}
