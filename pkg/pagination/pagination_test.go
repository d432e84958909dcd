package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("Normalize(0,0) = %+v, want page=1 limit=10", p)
	}

	p = Normalize(-3, -1)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("Normalize(-3,-1) = %+v, want page=1 limit=10", p)
	}
}

func TestNormalizeCapsLimit(t *testing.T) {
	p := Normalize(2, 5000)
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want capped at %d", p.Limit, MaxLimit)
	}
	if p.Page != 2 {
		t.Errorf("page = %d, want 2", p.Page)
	}
}

func TestOffsetIsOneBased(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}
	for _, c := range cases {
		p := Normalize(c.page, c.limit)
		if got := p.Offset(); got != c.want {
			t.Errorf("Offset(page=%d,limit=%d) = %d, want %d", c.page, c.limit, got, c.want)
		}
	}
}

func TestMetaTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}
	for _, c := range cases {
		m := NewMeta(Params{Page: 1, Limit: c.limit}, c.total)
		if m.TotalPages != c.wantPages {
			t.Errorf("NewMeta(total=%d,limit=%d).TotalPages = %d, want %d",
				c.total, c.limit, m.TotalPages, c.wantPages)
		}
	}
}

func TestNewPageNeverReturnsNilItems(t *testing.T) {
	page := NewPage[int](nil, Normalize(1, 10), 0)
	if page.Items == nil {
		t.Error("NewPage(nil, ...) produced nil Items, want empty slice")
	}
}
