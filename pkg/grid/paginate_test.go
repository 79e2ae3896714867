package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		size       int
		page       int
		wantLo     int
		wantHi     int
		wantPage   int
		wantTotal  int
	}{
		{name: "first page full", total: 25, size: 10, page: 1, wantLo: 0, wantHi: 10, wantPage: 1, wantTotal: 3},
		{name: "last page partial", total: 25, size: 10, page: 3, wantLo: 20, wantHi: 25, wantPage: 3, wantTotal: 3},
		{name: "page past end clamps down", total: 7, size: 5, page: 10, wantLo: 5, wantHi: 7, wantPage: 2, wantTotal: 2},
		{name: "page below one clamps up", total: 7, size: 5, page: 0, wantLo: 0, wantHi: 5, wantPage: 1, wantTotal: 2},
		{name: "empty set is one empty page", total: 0, size: 10, page: 4, wantLo: 0, wantHi: 0, wantPage: 1, wantTotal: 1},
		{name: "exact multiple", total: 20, size: 10, page: 2, wantLo: 10, wantHi: 20, wantPage: 2, wantTotal: 2},
		{name: "size one", total: 3, size: 1, page: 2, wantLo: 1, wantHi: 2, wantPage: 2, wantTotal: 3},
		{name: "degenerate size treated as one", total: 3, size: 0, page: 1, wantLo: 0, wantHi: 1, wantPage: 1, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, page, totalPages := Paginate(tt.total, tt.size, tt.page)
			assert.Equal(t, tt.wantLo, lo, "lo")
			assert.Equal(t, tt.wantHi, hi, "hi")
			assert.Equal(t, tt.wantPage, page, "page")
			assert.Equal(t, tt.wantTotal, totalPages, "totalPages")
		})
	}
}
