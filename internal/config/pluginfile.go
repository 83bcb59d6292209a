package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
)

// genericFilterSection applies to every command unless a
// "filter-<command>" section exists.
const genericFilterSection = "filter"

// PluginFile is the parsed plugin-local .moodle-plugin-ci.yml.
type PluginFile struct {
	sections map[string]plugin.Filters
}

// LoadPluginFile reads the plugin-local config file in pluginDir. A missing
// file yields an empty PluginFile; malformed YAML wraps ErrPluginConfigParse.
// Keys other than filter sections are ignored.
func LoadPluginFile(pluginDir string) (*PluginFile, error) {
	path := PluginConfigPath(pluginDir)
	data, err := os.ReadFile(path) //#nosec G304 -- path is inside the plugin under test
	if stderrors.Is(err, fs.ErrNotExist) {
		return &PluginFile{sections: map[string]plugin.Filters{}}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return ParsePluginFile(data)
}

// ParsePluginFile parses plugin-local config content.
func ParsePluginFile(data []byte) (*PluginFile, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrPluginConfigParse, err)
	}

	file := &PluginFile{sections: make(map[string]plugin.Filters)}
	for key, node := range raw {
		if key != genericFilterSection && !isCommandSection(key) {
			continue
		}
		var filters plugin.Filters
		if err := node.Decode(&filters); err != nil {
			return nil, fmt.Errorf("%w: section %q: %w", errors.ErrPluginConfigParse, key, err)
		}
		file.sections[key] = filters
	}
	return file, nil
}

// Filters returns the exclusions for command. A "filter-<command>" section
// replaces the generic "filter" section entirely when present.
func (p *PluginFile) Filters(command string) plugin.Filters {
	if f, ok := p.sections[genericFilterSection+"-"+command]; ok {
		return f
	}
	return p.sections[genericFilterSection]
}

func isCommandSection(key string) bool {
	prefix := genericFilterSection + "-"
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}
