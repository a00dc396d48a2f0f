package router

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RouteSpec is one declarative route: a pattern and the name of the view it
// activates.
type RouteSpec struct {
	Pattern string `yaml:"pattern"`
	View    string `yaml:"view"`
}

// routeFile is the YAML document layout.
type routeFile struct {
	Routes []RouteSpec `yaml:"routes"`
}

// UnknownViewError reports a route spec naming a view that was not provided.
type UnknownViewError struct {
	View string
}

func (e *UnknownViewError) Error() string {
	return fmt.Sprintf("unknown view %q", e.View)
}

// LoadTable parses a YAML route table. Order is preserved. Patterns are
// compiled here so a malformed table fails before any view is built.
func LoadTable(data []byte) ([]RouteSpec, error) {
	var f routeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, errors.New("route table is empty")
	}

	for i, spec := range f.Routes {
		if spec.View == "" {
			return nil, &ConfigError{Pattern: spec.Pattern, Err: fmt.Errorf("route %d has no view", i)}
		}
		if _, err := Compile(spec.Pattern); err != nil {
			return nil, err
		}
	}
	return f.Routes, nil
}

// Views returns the distinct view names of specs in first-use order.
func Views(specs []RouteSpec) []string {
	seen := make(map[string]bool, len(specs))
	var out []string
	for _, s := range specs {
		if !seen[s.View] {
			seen[s.View] = true
			out = append(out, s.View)
		}
	}
	return out
}
