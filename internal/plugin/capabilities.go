// Package plugin inspects the plugin under test: it recognizes the plugin
// root, parses its component, detects which test families it ships and
// enumerates or copies its files through the configured exclusion filters.
package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// errStopWalk ends a directory walk early once a match is found.
var errStopWalk = errors.New("stop walk")

// Capabilities is the immutable snapshot of facts about a plugin directory.
// It is computed once by Inspect and only exposes read accessors.
type Capabilities struct {
	dir              string
	component        string
	pluginType       string
	name             string
	hasUnitTests     bool
	hasBehatFeatures bool
	filters          Filters
}

// Inspect builds the capabilities of the plugin rooted at dir. It fails with
// ErrInvalidPluginDir when dir is not a plugin root and ErrPluginComponent
// when the component cannot be determined.
func Inspect(dir string, filters Filters) (*Capabilities, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty path", ciErrors.ErrInvalidPluginDir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ciErrors.ErrInvalidPluginDir, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ciErrors.ErrInvalidPluginDir, abs)
	}

	if _, err := os.Stat(filepath.Join(abs, constants.PluginVersionFile)); err != nil {
		return nil, fmt.Errorf("%w: %s has no %s", ciErrors.ErrInvalidPluginDir, abs, constants.PluginVersionFile)
	}

	component, pluginType, name, err := readComponent(abs)
	if err != nil {
		return nil, err
	}

	caps := &Capabilities{
		dir:        abs,
		component:  component,
		pluginType: pluginType,
		name:       name,
		filters:    Filters{}.Merge(filters),
	}

	caps.hasUnitTests, err = caps.containsFile(constants.UnitTestsDir, func(rel string) bool {
		return strings.HasSuffix(rel, constants.UnitTestSuffix)
	})
	if err != nil {
		return nil, err
	}

	caps.hasBehatFeatures, err = caps.containsFile(constants.BehatDir, func(rel string) bool {
		return filepath.Ext(rel) == constants.BehatFeatureExt
	})
	if err != nil {
		return nil, err
	}

	return caps, nil
}

// Dir returns the absolute plugin root.
func (c *Capabilities) Dir() string { return c.dir }

// Component returns the frankenstyle component, e.g. "local_ci".
func (c *Capabilities) Component() string { return c.component }

// Type returns the plugin type prefix, e.g. "local".
func (c *Capabilities) Type() string { return c.pluginType }

// Name returns the plugin name without its type prefix.
func (c *Capabilities) Name() string { return c.name }

// HasUnitTests reports whether the plugin ships unit tests.
func (c *Capabilities) HasUnitTests() bool { return c.hasUnitTests }

// HasBehatFeatures reports whether the plugin ships behaviour test features.
func (c *Capabilities) HasBehatFeatures() bool { return c.hasBehatFeatures }

// Filters returns a copy of the exclusion filters.
func (c *Capabilities) Filters() Filters {
	return Filters{}.Merge(c.filters)
}

// InstallPath returns where the plugin lives inside a host platform checkout.
func (c *Capabilities) InstallPath(moodleDir string) string {
	typeDir, _ := TypeDir(c.pluginType)
	return filepath.Join(moodleDir, filepath.FromSlash(typeDir), c.name)
}

// Files returns the absolute paths of every non-excluded file whose
// extension is one of exts (all files when exts is empty), sorted.
func (c *Capabilities) Files(exts ...string) ([]string, error) {
	var files []string
	err := c.walk("", func(rel string) error {
		if len(exts) == 0 || lo.Contains(exts, filepath.Ext(rel)) {
			files = append(files, filepath.Join(c.dir, filepath.FromSlash(rel)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// walk calls fn with the slash-separated relative path of every
// non-excluded regular file below sub.
func (c *Capabilities) walk(sub string, fn func(rel string) error) error {
	root := filepath.Join(c.dir, filepath.FromSlash(sub))
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relOS, err := filepath.Rel(c.dir, p)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relOS)
		if rel == "." {
			return nil
		}

		if c.filters.Excludes(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(rel)
	})
}

func (c *Capabilities) containsFile(sub string, match func(rel string) bool) (bool, error) {
	found := false
	err := c.walk(sub, func(rel string) error {
		if match(rel) {
			found = true
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return false, fmt.Errorf("scanning %s: %w", sub, err)
	}
	return found, nil
}
