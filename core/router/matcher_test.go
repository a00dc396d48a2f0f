package router

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompile_Malformed(t *testing.T) {
	_, err := Compile(`/item/(?P<id>[0-9]+`)
	if err == nil {
		t.Fatal("Compile() error = nil, want ConfigError")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Pattern != `/item/(?P<id>[0-9]+` {
		t.Errorf("Pattern = %q", cfgErr.Pattern)
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on a malformed pattern")
		}
	}()
	MustCompile(`(`)
}

func TestPathMatcher_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		ok      bool
		params  map[string]string
	}{
		{"root", `/`, "/", true, map[string]string{}},
		{"root anchored", `^/$`, "/", true, map[string]string{}},
		{"empty path is root", `/`, "", true, map[string]string{}},
		{"full match only", `/items`, "/items/3", false, nil},
		{"no prefix match", `/item`, "/items", false, nil},
		{"product id", `/item/(?P<productID>[0-9]+)`, "/item/42", true, map[string]string{"productID": "42"}},
		{"angle group syntax", `/item/(?<productID>[0-9]+)`, "/item/7", true, map[string]string{"productID": "7"}},
		{"not a number", `/item/(?P<productID>[0-9]+)`, "/item/abc", false, nil},
		{"optional absent", `/items(/(?P<category>[0-9]*)(/(?P<page>[0-9]*))?)?`, "/items", true, map[string]string{}},
		{"optional category", `/items(/(?P<category>[0-9]*)(/(?P<page>[0-9]*))?)?`, "/items/3", true, map[string]string{"category": "3"}},
		{"optional both", `/items(/(?P<category>[0-9]*)(/(?P<page>[0-9]*))?)?`, "/items/3/2", true, map[string]string{"category": "3", "page": "2"}},
		{"empty group participates", `/items(/(?P<category>[0-9]*))?`, "/items/", true, map[string]string{"category": ""}},
		{"query ignored", `/search/(?P<page>[0-9]+)/?`, "/search/1/?q=tea", true, map[string]string{"page": "1"}},
		{"fragment ignored", `/cart`, "/cart#top", true, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			params, ok := m.Match(tt.path)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(params.values, tt.params) {
				t.Errorf("params = %v, want %v", params.values, tt.params)
			}
		})
	}
}

func TestParams_Accessors(t *testing.T) {
	m := MustCompile(`/items(/(?P<category>[0-9]*)(/(?P<page>[0-9]*))?)?`)

	params, ok := m.Match("/items/12?priceMin=10&isNew=true")
	if !ok {
		t.Fatal("Match() ok = false")
	}

	if v, ok := params.Get("category"); !ok || v != "12" {
		t.Errorf("Get(category) = %q, %v, want 12, true", v, ok)
	}
	if _, ok := params.Get("page"); ok {
		t.Error("Get(page) ok = true, want false for an absent group")
	}
	if n, ok := params.Int("category"); !ok || n != 12 {
		t.Errorf("Int(category) = %d, %v, want 12, true", n, ok)
	}
	if _, ok := params.Int("page"); ok {
		t.Error("Int(page) ok = true, want false")
	}
	if got := params.Value("page", "1"); got != "1" {
		t.Errorf("Value(page) = %q, want default 1", got)
	}
	if got := params.Names(); !reflect.DeepEqual(got, []string{"category", "page"}) {
		t.Errorf("Names() = %v", got)
	}
	if params.Len() != 1 {
		t.Errorf("Len() = %d, want 1", params.Len())
	}
	if params.Path() != "/items/12" {
		t.Errorf("Path() = %q, want /items/12", params.Path())
	}

	q := params.Query()
	if q.Get("priceMin") != "10" || q.Get("isNew") != "true" {
		t.Errorf("Query() = %v", q)
	}
}

func TestParams_Zero(t *testing.T) {
	var p Params
	if _, ok := p.Get("x"); ok {
		t.Error("zero Params should have no values")
	}
	if len(p.Query()) != 0 {
		t.Error("zero Params should have an empty query")
	}
}
