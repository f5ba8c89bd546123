package collector

import "errors"

// ErrAssemblyInconsistency is returned by BuildMatrix when a block
// references a GlobalIndex that is not resolvable through the supplied
// DofMap (spec.md §7, AssemblyInconsistency). It is always wrapped with
// the offending indices, never returned bare.
var ErrAssemblyInconsistency = errors.New("collector: assembly inconsistency")
