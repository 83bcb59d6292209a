package plugin

import (
	"path"
	"strings"

	"github.com/samber/lo"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
)

// Filters holds the exclusion sets applied before any installer or checker
// sees a file.
//
// NotPaths entries are slash-separated paths relative to the plugin root and
// exclude that file or everything below that directory. NotNames entries are
// shell globs matched against a file's base name.
type Filters struct {
	NotPaths []string `yaml:"notPaths" json:"not_paths" mapstructure:"not_paths"`
	NotNames []string `yaml:"notNames" json:"not_names" mapstructure:"not_names"`
}

// Merge returns the union of both filter sets with duplicates and blanks removed.
func (f Filters) Merge(other Filters) Filters {
	return Filters{
		NotPaths: normalize(append(append([]string{}, f.NotPaths...), other.NotPaths...), cleanPath),
		NotNames: normalize(append(append([]string{}, f.NotNames...), other.NotNames...), strings.TrimSpace),
	}
}

// IsEmpty reports whether no exclusions are configured.
func (f Filters) IsEmpty() bool {
	return len(f.NotPaths) == 0 && len(f.NotNames) == 0
}

// Excludes reports whether rel (slash-separated, relative to the plugin
// root) is filtered out. Name globs apply to files only.
func (f Filters) Excludes(rel string, isDir bool) bool {
	rel = cleanPath(rel)
	if rel == "" {
		return false
	}

	segments := strings.Split(rel, "/")
	if lo.Some(segments, constants.AlwaysExcluded) {
		return true
	}

	for _, p := range f.NotPaths {
		p = cleanPath(p)
		if p == "" {
			continue
		}
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}

	if isDir {
		return false
	}

	base := path.Base(rel)
	return lo.SomeBy(f.NotNames, func(pattern string) bool {
		matched, err := path.Match(pattern, base)
		return err == nil && matched
	})
}

func cleanPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	p = strings.Trim(path.Clean(p), "/")
	if p == "." {
		return ""
	}
	return p
}

func normalize(values []string, clean func(string) string) []string {
	return lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return clean(v)
	})))
}
