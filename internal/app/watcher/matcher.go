package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"

	"screenlog/internal/app/errors"
)

// editorArtifacts are the temporary files editors write next to the file being saved
var editorArtifacts = []string{"*.swp", "*.swx", "*~", ".#*", "#*#", "*.tmp"}

// Matcher decides whether a changed file in a watched directory is relevant
type Matcher interface {
	Match(path string) bool
}

type matcher struct {
	includes []glob.Glob
	ignores  []glob.Glob
}

// NewMatcher creates a Matcher over base names; ignores take precedence over includes
func NewMatcher(includes, ignores []string) (Matcher, error) {
	m := &matcher{}

	var err error

	if m.includes, err = compileAll(includes); err != nil {
		return nil, err
	}

	if m.ignores, err = compileAll(ignores); err != nil {
		return nil, err
	}

	return m, nil
}

// NewFileMatcher matches exactly the given base names and skips editor artifacts
func NewFileMatcher(names ...string) (Matcher, error) {
	includes := make([]string, len(names))
	for i, name := range names {
		includes[i] = glob.QuoteMeta(name)
	}

	return NewMatcher(includes, editorArtifacts)
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))

	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s': %w", errors.ErrInvalidMatchPattern, p, err)
		}

		out = append(out, g)
	}

	return out, nil
}

// Match reports whether the base name of path is included and not ignored
func (m *matcher) Match(path string) bool {
	name := filepath.Base(path)

	for _, ignore := range m.ignores {
		if ignore.Match(name) {
			return false
		}
	}

	for _, include := range m.includes {
		if include.Match(name) {
			return true
		}
	}

	return false
}
