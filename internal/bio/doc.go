// Package bio models buoyant biological objects suspended in a fluid.
//
// Every object of a [Kind] shares one immutable configuration: radius,
// density, the derived mass and volume, color and a single collision shape.
// Objects own a [rigid.Body] whose gravity vector is replaced by the net
// buoyant acceleration (gravity minus buoyancy, fluid density 1) and whose
// velocity receives a bounded random kick on every [Object.Update].
//
//   - [Cell]: the primary organism
//   - [Molecule]: a second kind, currently only a collision partner
//   - [FillSpace]: deterministic grid placement of N cells in a box
//
// # Example
//
//	kind, _ := bio.NewKind(bio.DefaultCellParams())
//	placement, err := bio.FillSpace(ctx, kind, 64, min, max)
//
// Objects are not safe for concurrent use. A [Context] hands out ids and
// random numbers; ids only need the context to be safe for concurrent use
// when construction is parallelized.
package bio
