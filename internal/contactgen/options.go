// Package contactgen is the pure-geometry producer of rodconstraint.Block
// values: rod-rod proximity, rod-wall proximity, and rod-rod linkage
// closure (spec.md §4.2). It never touches the collector's internal pool
// structure beyond calling Append.
package contactgen

// Options carries the numeric policy knobs spec.md §6 names as
// "Configuration options recognised": separation buffers that shift
// effective radii, wall enablement, and the default linkage spring
// constant.
type Options struct {
	// SeparationBufferContacts shifts effective radii for rod-rod and
	// rod-wall contacts; typically 0.
	SeparationBufferContacts float64
	// SeparationBufferLinkages shifts effective radii for linkage gap
	// computation; typically 0.05.
	SeparationBufferLinkages float64

	// WallLowZ / WallHighZ enable planar wall contact generation at
	// ZLow / ZHigh respectively.
	WallLowZ, WallHighZ bool
	ZLow, ZHigh         float64

	// LinkKappa is the default spring constant applied when a linkage
	// is emitted (the Body model in this module has no per-link
	// override, so every linkage uses this value).
	LinkKappa float64
}

// degenerateThreshold is the distance below which a contact normal falls
// back to a canonical direction rather than dividing by ~0 (spec.md
// §4.2, "Numeric policy").
const degenerateThreshold = 1e-12
