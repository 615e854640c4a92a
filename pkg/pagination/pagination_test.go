package pagination

import (
	"net/url"
	"testing"
)

func TestFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, DefaultLimit},
		{"explicit", "page=3&limit=20", 3, 20},
		{"garbage", "page=abc&limit=xyz", 1, DefaultLimit},
		{"negative", "page=-1&limit=-5", 1, DefaultLimit},
		{"capped", "page=2&limit=5000", 2, MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			got := FromQuery(values)
			if got.Page != tc.page || got.Limit != tc.limit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d", got.Page, got.Limit, tc.page, tc.limit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Normalize(Params{Page: 4, Limit: 10})
	if p.Offset() != 30 {
		t.Fatalf("expected offset 30, got %d", p.Offset())
	}
	if first := Normalize(Params{}).Offset(); first != 0 {
		t.Fatalf("expected offset 0 for first page, got %d", first)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 12, 9},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
