package sparsemat

import "testing"

func TestContiguousDofMapOffsets(t *testing.T) {
	m := NewContiguousDofMap(3)

	tests := []struct {
		globalIndex int
		wantOffset  int
		wantOK      bool
	}{
		{0, 0, true},
		{1, 6, true},
		{2, 12, true},
		{3, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		offset, ok := m.LocalOffset(tt.globalIndex)
		if ok != tt.wantOK || (ok && offset != tt.wantOffset) {
			t.Errorf("LocalOffset(%d) = (%d, %v), want (%d, %v)",
				tt.globalIndex, offset, ok, tt.wantOffset, tt.wantOK)
		}
	}

	if got := m.NumLocalDOF(); got != 18 {
		t.Errorf("NumLocalDOF = %d, want 18", got)
	}
}
