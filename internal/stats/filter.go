package stats

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

/* Patterns support * and ** wildcards:
- * matches within a single path segment
- ** matches across segments
*/

// Filter keeps or drops records by their repository-relative path
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns. Empty slices keep everything.
func NewFilter(include, exclude []string) (Filter, error) {
	inc, err := compilePatterns(include)
	if err != nil {
		return Filter{}, fmt.Errorf("include pattern: %w", err)
	}
	exc, err := compilePatterns(exclude)
	if err != nil {
		return Filter{}, fmt.Errorf("exclude pattern: %w", err)
	}
	return Filter{include: inc, exclude: exc}, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, pattern := range patterns {
		normalized := strings.TrimPrefix(strings.TrimSpace(pattern), "/")
		if normalized == "" {
			continue
		}
		if containsUnsupportedWildcards(normalized) {
			log.Warn().Str("pattern", pattern).Msg("Pattern contains unsupported wildcard characters, only * and ** are supported")
			continue
		}
		g, err := glob.Compile(normalized, '/')
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// containsUnsupportedWildcards checks if pattern contains unsupported wildcard characters
// Only * and ** are supported. Characters like ?, [, ], {, } are not supported.
func containsUnsupportedWildcards(pattern string) bool {
	return strings.ContainsAny(pattern, "?[]{}")
}

// Empty reports whether the filter keeps every record
func (f Filter) Empty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// Keep applies include patterns first, then exclude patterns
func (f Filter) Keep(r Record) bool {
	if f.Empty() {
		return true
	}
	p := r.FullPath()
	if len(f.include) > 0 && !matchesAny(f.include, p) {
		return false
	}
	return !matchesAny(f.exclude, p)
}

func matchesAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
