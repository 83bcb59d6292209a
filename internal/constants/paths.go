package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.moodle-plugin-ci/logs/moodle-plugin-ci.log
	CLILogFileName = "moodle-plugin-ci.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the AppHome directory.
	GlobalConfigName = "config.yaml"

	// PluginConfigName is the name of the plugin-local configuration file.
	// This file is located in the plugin root directory.
	PluginConfigName = ".moodle-plugin-ci.yml"
)

// Plugin layout markers.
const (
	// PluginVersionFile marks a directory as a plugin root.
	PluginVersionFile = "version.php"

	// UnitTestsDir holds the plugin's unit tests.
	UnitTestsDir = "tests"

	// UnitTestSuffix is the file name suffix of a unit test file.
	UnitTestSuffix = "_test.php"

	// BehatDir holds the plugin's behavior-test features, relative to the plugin root.
	BehatDir = "tests/behat"

	// BehatFeatureExt is the extension of a behavior-test feature file.
	BehatFeatureExt = ".feature"

	// PHPExt is the extension of the files inspected by the code checker.
	PHPExt = ".php"
)

// Host platform data directories created by the environment installer.
const (
	// UnitTestDataDir is the data root used by the unit test framework.
	UnitTestDataDir = "phpu_moodledata"

	// BehatDataDir is the data root used by the behavior-test framework.
	BehatDataDir = "behat_moodledata"

	// DataDirLockFile is the lock file held inside the data directory during install.
	DataDirLockFile = ".moodle-plugin-ci.lock"

	// HostConfigFile is the host platform configuration file written by the environment installer.
	HostConfigFile = "config.php"
)

// AlwaysExcluded lists directory names never copied or checked, regardless of filters.
//
//nolint:gochecknoglobals // Read-only list shared by the plugin package
var AlwaysExcluded = []string{".git", "vendor", "node_modules"}
