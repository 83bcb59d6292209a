// Package install provisions the test environment for a plugin.
//
// Plan decides from the plugin's capabilities which installation steps are
// needed and in what order. Factory binds those steps to a shared
// ExecutionContext and adds them to a Collection, which runs them strictly
// in order and stops at the first failure. There is no rollback: the
// environment is disposable and the caller discards it on failure.
package install

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tags one of the six installer variants.
type Kind int

// Installer kinds in dependency order.
const (
	KindEnvironment Kind = iota
	KindPlugin
	KindDependencies
	KindBehat
	KindUnitTests
	KindScriptLint
)

var kindNames = [...]string{
	KindEnvironment:  "environment",
	KindPlugin:       "plugin",
	KindDependencies: "dependencies",
	KindBehat:        "behat",
	KindUnitTests:    "unit-tests",
	KindScriptLint:   "script-lint",
}

// String returns the kind's identifier.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Heading returns the display name, e.g. "Unit Tests".
func (k Kind) Heading() string {
	// A Caser is stateful and not safe for concurrent use.
	return cases.Title(language.English).String(strings.ReplaceAll(k.String(), "-", " "))
}

// MarshalText renders the identifier in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AllKinds returns every kind in dependency order.
func AllKinds() []Kind {
	return []Kind{KindEnvironment, KindPlugin, KindDependencies, KindBehat, KindUnitTests, KindScriptLint}
}
