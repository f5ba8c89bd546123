// Package body defines the read-only rod view consumed by the
// constraint-resolution core. Geometry I/O, neighbour search, and domain
// decomposition that populate these fields are external collaborators
// (spec.md §1); this package only carries the data across that boundary.
package body

import "github.com/san-kum/rodconstraint/internal/geom"

// Body is a single sphero-cylindrical rod as seen by the core: a
// position, a unit orientation, a length and collision radius, plus the
// indices that tie it back to the collaborator's distributed bookkeeping.
type Body struct {
	Position    geom.Vec3
	Orientation geom.Quat
	Length      float64
	Radius      float64

	// GlobalIndex is the globally contiguous ordinal assigned by the
	// collaborator; it drives the 6*GlobalIndex DOF offset into the
	// mobility vector space.
	GlobalIndex int

	// GID is a stable identifier independent of GlobalIndex, used for
	// linkage lookups and diagnostics (GlobalIndex may be renumbered
	// across steps, GID never is).
	GID string

	// NextGID names the body this one links to head-to-tail, or nil if
	// this body is not the head of a linkage.
	NextGID *string

	// Image identifies the periodic image a body lives in; linkages are
	// only valid between bodies in the same image (spec.md §9, Open
	// Question on periodic boundary conditions).
	Image [3]int
}

// Axis returns the unit vector along the rod's long axis in lab frame.
func (b Body) Axis() geom.Vec3 { return b.Orientation.Axis() }

// Head returns the lab-frame position of the rod's +axis endpoint,
// i.e. P = center + (length/2)*axis.
func (b Body) Head() geom.Vec3 {
	return b.Position.Add(b.Axis().Scale(b.Length / 2))
}

// Tail returns the lab-frame position of the rod's -axis endpoint,
// i.e. Q = center - (length/2)*axis.
func (b Body) Tail() geom.Vec3 {
	return b.Position.Add(b.Axis().Scale(-b.Length / 2))
}
