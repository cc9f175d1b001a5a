package paginate

import "testing"

func TestNextURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		pageSize int
		expected string
	}{
		{
			name:     "page parameter increments",
			raw:      "http://games.test/catalog?page=3",
			pageSize: 24,
			expected: "http://games.test/catalog?page=4",
		},
		{
			name:     "short page parameter",
			raw:      "http://games.test/catalog?p=1",
			pageSize: 24,
			expected: "http://games.test/catalog?p=2",
		},
		{
			name:     "offset advances by page size",
			raw:      "http://games.test/catalog?offset=24",
			pageSize: 24,
			expected: "http://games.test/catalog?offset=48",
		},
		{
			name:     "offset keeps other parameters",
			raw:      "http://games.test/catalog?offset=0&genre=rpg",
			pageSize: 24,
			expected: "http://games.test/catalog?genre=rpg&offset=24",
		},
		{
			name:     "trailing path segment increments",
			raw:      "http://games.test/category/abc/3",
			pageSize: 24,
			expected: "http://games.test/category/abc/4",
		},
		{
			name:     "trailing slash tolerated",
			raw:      "http://games.test/category/abc/3/",
			pageSize: 24,
			expected: "http://games.test/category/abc/4",
		},
		{
			name:     "no marker appends page 2",
			raw:      "http://games.test/catalog",
			pageSize: 24,
			expected: "http://games.test/catalog?page=2",
		},
		{
			name:     "unparseable page value restarts from 1",
			raw:      "http://games.test/catalog?page=abc",
			pageSize: 24,
			expected: "http://games.test/catalog?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextURL(tt.raw, tt.pageSize)
			if err != nil {
				t.Fatalf("NextURL(%q) error: %v", tt.raw, err)
			}
			if got != tt.expected {
				t.Fatalf("NextURL(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestHasPageMarker(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{raw: "http://games.test/catalog?page=1", expected: true},
		{raw: "http://games.test/catalog?offset=24", expected: true},
		{raw: "http://games.test/category/abc/3", expected: true},
		{raw: "http://games.test/catalog", expected: false},
		{raw: "http://games.test/category/abc", expected: false},
		{raw: "http://games.test/catalog?genre=rpg", expected: false},
	}

	for _, tt := range tests {
		if got := HasPageMarker(tt.raw); got != tt.expected {
			t.Fatalf("HasPageMarker(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}
