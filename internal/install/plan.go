package install

// Capabilities is the subset of plugin facts the plan depends on.
type Capabilities interface {
	HasUnitTests() bool
	HasBehatFeatures() bool
}

// Plan returns the installer kinds required for caps, in execution order:
// environment and plugin always; dependencies when either test family is
// present; behat and unit tests for their own family; script lint only
// when includeJS is set.
func Plan(caps Capabilities, includeJS bool) []Kind {
	kinds := []Kind{KindEnvironment, KindPlugin}

	if caps.HasBehatFeatures() || caps.HasUnitTests() {
		kinds = append(kinds, KindDependencies)
	}
	if caps.HasBehatFeatures() {
		kinds = append(kinds, KindBehat)
	}
	if caps.HasUnitTests() {
		kinds = append(kinds, KindUnitTests)
	}
	if includeJS {
		kinds = append(kinds, KindScriptLint)
	}

	return kinds
}
