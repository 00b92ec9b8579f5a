package pagination

import "testing"

func TestOffsetRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        OffsetRequest
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", in: OffsetRequest{}, wantPage: 1, wantLimit: PageDefaultSize},
		{name: "negative page", in: OffsetRequest{Page: -3, Limit: 5}, wantPage: 1, wantLimit: 5},
		{name: "oversized limit capped", in: OffsetRequest{Page: 2, Limit: 5000}, wantPage: 2, wantLimit: PageMaxSize},
		{name: "valid passthrough", in: OffsetRequest{Page: 4, Limit: 20}, wantPage: 4, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			if err := r.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if r.Page != tt.wantPage || r.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", r.Page, r.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewMeta_PageCount(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int64
	}{
		{total: 12, limit: 5, wantPages: 3},
		{total: 10, limit: 5, wantPages: 2},
		{total: 0, limit: 10, wantPages: 0},
		{total: 1, limit: 10, wantPages: 1},
	}

	for _, tt := range tests {
		meta := NewMeta(tt.total, 1, tt.limit)
		if meta.Pages != tt.wantPages {
			t.Errorf("NewMeta(%d, 1, %d).Pages = %d, want %d", tt.total, tt.limit, meta.Pages, tt.wantPages)
		}
	}
}

func TestOffsetRequest_Offset(t *testing.T) {
	r := OffsetRequest{Page: 2, Limit: 5}
	if got := r.Offset(); got != 5 {
		t.Errorf("Offset() = %d, want 5", got)
	}
}

func TestNewOffsetResult(t *testing.T) {
	items := []string{"a", "b", "c"}
	res := NewOffsetResult(items, 7, 2, 3)

	if len(res.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(res.Items))
	}
	if res.Meta.Total != 7 || res.Meta.Page != 2 || res.Meta.Limit != 3 {
		t.Errorf("unexpected meta: %+v", res.Meta)
	}
	if res.Meta.Pages != 3 {
		t.Errorf("Pages = %d, want 3", res.Meta.Pages)
	}
}
