package router

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PathMatcher matches a full path and extracts its named groups.
type PathMatcher struct {
	pattern string
	re      *regexp.Regexp
	names   []string
}

// Compile builds a PathMatcher from an RE2 pattern with named groups, e.g.
// `/item(/(?P<productID>[0-9]+))?`. The rule always applies to the whole
// path; explicit ^ and $ anchors are accepted but not required.
func Compile(pattern string) (*PathMatcher, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, &ConfigError{Pattern: pattern, Err: err}
	}

	var names []string
	for _, name := range re.SubexpNames() {
		if name != "" {
			names = append(names, name)
		}
	}

	return &PathMatcher{pattern: pattern, re: re, names: names}, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(pattern string) *PathMatcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source pattern.
func (m *PathMatcher) Pattern() string {
	return m.pattern
}

// Names returns the named groups of the pattern in order of appearance.
func (m *PathMatcher) Names() []string {
	return m.names
}

// Match reports whether path matches and extracts its parameters. Query
// string and fragment are not part of the match; the query stays available
// through Params.Query.
func (m *PathMatcher) Match(path string) (Params, bool) {
	p, rawQuery := splitPath(path)

	loc := m.re.FindStringSubmatchIndex(p)
	if loc == nil {
		return Params{}, false
	}

	params := Params{
		path:     p,
		rawQuery: rawQuery,
		names:    m.names,
		values:   make(map[string]string, len(m.names)),
	}
	for i, name := range m.re.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		params.values[name] = p[loc[2*i]:loc[2*i+1]]
	}
	return params, true
}

func splitPath(path string) (p, rawQuery string) {
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	p, rawQuery, _ = strings.Cut(path, "?")
	if p == "" {
		p = "/"
	}
	return p, rawQuery
}

// Params holds the named parameters of a matched path. A group that did not
// take part in the match is absent: Get reports ok == false for it, which is
// distinct from a group that matched the empty string.
type Params struct {
	path     string
	rawQuery string
	names    []string
	values   map[string]string
}

// Get returns the value of a named group.
func (p Params) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Value returns the value of a named group, or def when the group is absent
// or empty.
func (p Params) Value(name, def string) string {
	if v, ok := p.values[name]; ok && v != "" {
		return v
	}
	return def
}

// Int parses a named group as a base-10 integer. It reports false when the
// group is absent, empty or not a number.
func (p Params) Int(name string) (int64, bool) {
	v, ok := p.values[name]
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Names returns every named group of the matching pattern, present or not.
func (p Params) Names() []string {
	return p.names
}

// Len returns the number of groups that took part in the match.
func (p Params) Len() int {
	return len(p.values)
}

// Path returns the matched path without query or fragment.
func (p Params) Path() string {
	return p.path
}

// Query returns the parsed query string of the navigated path.
func (p Params) Query() url.Values {
	q, _ := url.ParseQuery(p.rawQuery)
	return q
}
