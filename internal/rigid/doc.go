// Package rigid is a small rigid-body engine used to drive cell populations.
//
// It covers exactly what the bio package consumes from a physics engine:
//
//   - [Sphere]: collision shape with the solid-sphere inertia tensor
//   - [Body]: handle owning position, orientation, velocities and a
//     per-body gravity override
//   - [World]: semi-implicit Euler stepping, optional container walls and
//     overlap reporting
//
// There is no constraint solver. Overlapping spheres are reported by
// [World.Overlaps] and left for the caller to react to.
package rigid
