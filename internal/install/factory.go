package install

import (
	"fmt"

	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
)

// Factory composes installers for one plugin from a shared ExecutionContext.
type Factory struct {
	ec     *ExecutionContext
	plugin *plugin.Capabilities
}

// NewFactory creates a factory. caps and ec must be fully built; the factory
// and its installers never modify them.
func NewFactory(caps *plugin.Capabilities, ec *ExecutionContext) *Factory {
	return &Factory{ec: ec, plugin: caps}
}

// Plan returns the kinds this factory would add.
func (f *Factory) Plan() []Kind {
	return Plan(f.plugin, f.ec.IncludeJS)
}

// AddInstallers appends the required installers to c in dependency order.
// No I/O happens until the collection runs.
func (f *Factory) AddInstallers(c *Collection) {
	for _, kind := range f.Plan() {
		c.Add(f.New(kind))
	}
}

// New builds the installer for kind.
func (f *Factory) New(kind Kind) Installer {
	switch kind {
	case KindEnvironment:
		return &EnvironmentInstaller{ec: f.ec}
	case KindPlugin:
		return &PluginInstaller{ec: f.ec, plugin: f.plugin}
	case KindDependencies:
		return &commandInstaller{kind: kind, ec: f.ec, cmd: dependencyCommand}
	case KindBehat:
		return &commandInstaller{kind: kind, ec: f.ec, cmd: behatCommand}
	case KindUnitTests:
		return &commandInstaller{kind: kind, ec: f.ec, cmd: unitTestCommand}
	case KindScriptLint:
		return &commandInstaller{kind: kind, ec: f.ec, cmd: scriptLintCommand}
	default:
		panic(fmt.Sprintf("install: unknown installer kind %d", int(kind)))
	}
}
