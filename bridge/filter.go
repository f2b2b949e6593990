package bridge

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Sensor names filter.
// Names are compared case-insensitive.
type filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// Constructs a new filter.
func newFilter(include []string, exclude []string) (*filter, error) {
	f := &filter{}
	var err error

	f.include, err = compile(include)
	if err != nil {
		return nil, errors.Wrap(err, "include compile failed")
	}

	f.exclude, err = compile(exclude)
	if err != nil {
		return nil, errors.Wrap(err, "exclude compile failed")
	}

	return f, nil
}

// Checks whether name should be exposed.
// Empty include list allows everything.
func (f *filter) match(name string) bool {
	name = strings.ToLower(name)
	if len(f.include) > 0 && !anyMatch(f.include, name) {
		return false
	}

	return !anyMatch(f.exclude, name)
}

// Compiles glob patterns.
func compile(patterns []string) ([]glob.Glob, error) {
	result := make([]glob.Glob, 0, len(patterns))
	for _, v := range patterns {
		g, err := glob.Compile(strings.ToLower(v))
		if err != nil {
			return nil, errors.Wrapf(err, "pattern %s", v)
		}

		result = append(result, g)
	}

	return result, nil
}

// Returns true if any of the globs matches.
func anyMatch(globs []glob.Glob, name string) bool {
	for _, v := range globs {
		if v.Match(name) {
			return true
		}
	}

	return false
}
