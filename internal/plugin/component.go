package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

var componentPattern = regexp.MustCompile(`\$plugin->component\s*=\s*['"]([a-z][a-z0-9]*_[a-z0-9_]+)['"]\s*;`)

// typeDirs maps a plugin type prefix to its directory inside the host
// platform checkout.
var typeDirs = map[string]string{
	"atto":         "lib/editor/atto/plugins",
	"auth":         "auth",
	"availability": "availability/condition",
	"block":        "blocks",
	"editor":       "lib/editor",
	"enrol":        "enrol",
	"filter":       "filter",
	"format":       "course/format",
	"gradeexport":  "grade/export",
	"gradeimport":  "grade/import",
	"gradereport":  "grade/report",
	"local":        "local",
	"message":      "message/output",
	"mod":          "mod",
	"plagiarism":   "plagiarism",
	"qbehaviour":   "question/behaviour",
	"qformat":      "question/format",
	"qtype":        "question/type",
	"report":       "report",
	"repository":   "repository",
	"theme":        "theme",
	"tiny":         "lib/editor/tiny/plugins",
	"tool":         "admin/tool",
}

// TypeDir returns the relative install directory for a plugin type.
func TypeDir(pluginType string) (string, bool) {
	dir, ok := typeDirs[pluginType]
	return dir, ok
}

// readComponent parses the frankenstyle component declared in version.php
// and splits it into type and name.
func readComponent(dir string) (component, pluginType, name string, err error) {
	versionFile := filepath.Join(dir, constants.PluginVersionFile)
	data, err := os.ReadFile(versionFile) //#nosec G304 -- path is the plugin root supplied by the caller
	if err != nil {
		return "", "", "", fmt.Errorf("%w: reading %s: %w", ciErrors.ErrPluginComponent, versionFile, err)
	}

	match := componentPattern.FindSubmatch(data)
	if match == nil {
		return "", "", "", fmt.Errorf("%w: no $plugin->component in %s", ciErrors.ErrPluginComponent, versionFile)
	}

	component = string(match[1])
	pluginType, name, _ = strings.Cut(component, "_")
	if _, ok := typeDirs[pluginType]; !ok {
		return "", "", "", fmt.Errorf("%w: unsupported plugin type %q in %s", ciErrors.ErrPluginComponent, pluginType, component)
	}

	return component, pluginType, name, nil
}
