// Package constants provides centralized constant values used throughout moodle-plugin-ci.
// This file contains tool-related constants for the tool detection system.
package constants

import "time"

// Tool detection timeout configuration.
const (
	// ToolDetectionTimeout is the maximum duration for detecting all tools.
	// Detection runs in parallel but must complete within this timeout.
	ToolDetectionTimeout = 5 * time.Second
)

// Tool names used by the installers, the code checker, and tool detection.
const (
	// ToolGit is the Git version control system.
	ToolGit = "git"

	// ToolPHP is the PHP interpreter.
	ToolPHP = "php"

	// ToolComposer is the PHP dependency manager.
	ToolComposer = "composer"

	// ToolNPM is the Node.js package manager.
	ToolNPM = "npm"

	// ToolPHPCS is the PHP CodeSniffer checker.
	ToolPHPCS = "phpcs"

	// ToolMySQL is the MySQL client used to create databases.
	ToolMySQL = "mysql"

	// ToolPSQL is the PostgreSQL client used to create databases.
	ToolPSQL = "psql"
)

// Minimum version constraints for detected tools (semver constraint syntax).
const (
	// MinVersionGit is the minimum required Git version.
	MinVersionGit = ">= 2.20.0"

	// MinVersionPHP is the minimum required PHP version.
	MinVersionPHP = ">= 8.1.0"

	// MinVersionComposer is the minimum required Composer version.
	MinVersionComposer = ">= 2.2.0"

	// MinVersionNPM is the minimum required npm version.
	MinVersionNPM = ">= 8.0.0"

	// MinVersionPHPCS is the minimum required PHP CodeSniffer version.
	MinVersionPHPCS = ">= 3.7.0"
)

// Tool version command arguments.
const (
	// VersionFlagStandard is the standard version flag used by most tools.
	VersionFlagStandard = "--version"
)
