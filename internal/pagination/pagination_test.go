package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"empty", PageRequest{}, 1, defaultPageSize},
		{"explicit", PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"oversized page clamps", PageRequest{Page: 1, PageSize: 10000}, 1, maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestRequested(t *testing.T) {
	if (PageRequest{}).Requested() {
		t.Error("zero request should not count as requested")
	}
	if !(PageRequest{PageSize: 5}).Requested() {
		t.Error("page size alone should count as requested")
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 2, 10, 25)

	if resp.Data == nil {
		t.Error("nil data should become an empty slice")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Meta().TotalItems != 25 {
		t.Errorf("expected meta to carry total items, got %d", resp.Meta().TotalItems)
	}
	if (PageRequest{Page: 2, PageSize: 10}).Offset() != 10 {
		t.Error("expected offset 10 for second page of 10")
	}
}
