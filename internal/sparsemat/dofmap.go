package sparsemat

// DofMap resolves a body's GlobalIndex to its 6-DOF column offset in the
// local mobility vector space. Off-rank bodies resolve through whatever
// directory the collaborator maintains; this module only needs the
// narrow query surface below (spec.md §9, "distributed maps are values,
// not globals": every assembly call takes one explicitly).
type DofMap interface {
	// LocalOffset returns the starting column (6*localIndex) for the
	// body with the given GlobalIndex, or ok=false if this rank holds
	// no column for it.
	LocalOffset(globalIndex int) (offset int, ok bool)
	// NumLocalDOF is the width of the local mobility vector space
	// (6 * number of bodies resolvable through LocalOffset).
	NumLocalDOF() int
}

// ContiguousDofMap is the single-rank DofMap: body i occupies columns
// [6i, 6i+6). Multi-rank deployments supply their own DofMap (e.g. one
// that falls through to a cross-rank directory for off-rank lookups);
// the core never constructs one itself (spec.md §6, setup input).
type ContiguousDofMap struct {
	N int
}

func NewContiguousDofMap(n int) ContiguousDofMap { return ContiguousDofMap{N: n} }

func (m ContiguousDofMap) LocalOffset(globalIndex int) (int, bool) {
	if globalIndex < 0 || globalIndex >= m.N {
		return 0, false
	}
	return 6 * globalIndex, true
}

func (m ContiguousDofMap) NumLocalDOF() int { return 6 * m.N }
