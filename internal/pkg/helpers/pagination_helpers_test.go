package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"oversized page size falls back", 2, 500, 10, 10},
		{"negative size falls back", 1, -5, 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			if offset != tc.wantOffset || limit != tc.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.size, offset, limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 {
		t.Errorf("expected 3 total pages for 25 items of size 10, got %d", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Errorf("expected current page 2, got %d", info.CurrentPage)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Errorf("empty result on page 1 should report 1 page, got %d", empty.TotalPages)
	}

	overshoot := NewPaginationInfo(5, 9, 10)
	if overshoot.CurrentPage != 1 {
		t.Errorf("current page should clamp to total pages, got %d", overshoot.CurrentPage)
	}
}
