package config

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Pre-compiled regexes for version parsing.
//
//nolint:gochecknoglobals // compiled once at package init
var (
	gitVersionRe      = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)
	phpVersionRe      = regexp.MustCompile(`PHP (\d+\.\d+(?:\.\d+)?)`)
	composerVersionRe = regexp.MustCompile(`Composer (?:version )?(\d+\.\d+(?:\.\d+)?)`)
	phpcsVersionRe    = regexp.MustCompile(`PHP_CodeSniffer version (\d+\.\d+(?:\.\d+)?)`)
	mysqlVersionRe    = regexp.MustCompile(`Ver (?:\d+\.\d+ Distrib )?(\d+\.\d+(?:\.\d+)?)`)
	psqlVersionRe     = regexp.MustCompile(`\(PostgreSQL\) (\d+(?:\.\d+){0,2})`)
	genericVersionRe  = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)
)

// ToolStatus represents the installation status of an external tool.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not installed.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is installed and meets version requirements.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is installed but below the minimum version.
	ToolStatusOutdated
)

// String returns a human-readable representation of the tool status.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for parsing JSON status strings.
func (s *ToolStatus) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "installed":
		*s = ToolStatusInstalled
	case "outdated":
		*s = ToolStatusOutdated
	default:
		*s = ToolStatusMissing
	}
	return nil
}

// Tool represents an external tool the installers or the checker depend on.
type Tool struct {
	// Name is the tool identifier (e.g., "php", "git").
	Name string `json:"name"`

	// Required indicates the install pipeline cannot run without it.
	Required bool `json:"required"`

	// Constraint is the semver constraint the installed version must satisfy.
	Constraint string `json:"constraint,omitempty"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool, in a stable order.
	Tools []Tool `json:"tools"`

	// HasMissingRequired indicates if any required tools are missing or outdated.
	HasMissingRequired bool `json:"has_missing_required"`
}

// MissingRequiredTools returns the required tools that are missing or outdated.
func (r *ToolDetectionResult) MissingRequiredTools() []Tool {
	return lo.Filter(r.Tools, func(tool Tool, _ int) bool {
		return tool.Required && tool.Status != ToolStatusInstalled
	})
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor with process.DefaultRunner.
type DefaultCommandExecutor struct {
	runner process.DefaultRunner
}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns stdout followed by stderr.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	stdout, stderr, _, err := e.runner.Run(ctx, process.Command{Name: name, Args: args})
	return stdout + stderr, err
}

// ToolDetector detects the installation status of external tools.
type ToolDetector interface {
	// Detect checks all configured tools and returns their status.
	Detect(ctx context.Context) (*ToolDetectionResult, error)
}

// DefaultToolDetector implements ToolDetector.
type DefaultToolDetector struct {
	executor CommandExecutor
	commands CommandsConfig
	checker  string
}

// NewToolDetectorWithExecutor creates a detector with a custom executor.
func NewToolDetectorWithExecutor(cfg *Config, executor CommandExecutor) *DefaultToolDetector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &DefaultToolDetector{
		executor: executor,
		commands: cfg.Commands,
		checker:  cfg.CodeChecker.Executable,
	}
}

// toolConfig holds the configuration for detecting a specific tool.
type toolConfig struct {
	name        string
	command     string
	constraint  string
	required    bool
	installHint string
	parse       *regexp.Regexp
}

func (d *DefaultToolDetector) toolConfigs() []toolConfig {
	return []toolConfig{
		{
			name:        constants.ToolGit,
			command:     d.commands.Git,
			constraint:  constants.MinVersionGit,
			required:    true,
			installHint: "Install Git from https://git-scm.com/downloads",
			parse:       gitVersionRe,
		},
		{
			name:        constants.ToolPHP,
			command:     d.commands.PHP,
			constraint:  constants.MinVersionPHP,
			required:    true,
			installHint: "Install PHP from https://www.php.net/downloads",
			parse:       phpVersionRe,
		},
		{
			name:        constants.ToolComposer,
			command:     d.commands.Composer,
			constraint:  constants.MinVersionComposer,
			required:    true,
			installHint: "Install Composer from https://getcomposer.org/download/",
			parse:       composerVersionRe,
		},
		{
			name:        constants.ToolNPM,
			command:     d.commands.NPM,
			constraint:  constants.MinVersionNPM,
			installHint: "Install Node.js and npm from https://nodejs.org/ (only needed without --no-js)",
			parse:       genericVersionRe,
		},
		{
			name:        constants.ToolPHPCS,
			command:     d.checker,
			constraint:  constants.MinVersionPHPCS,
			installHint: "Install with: composer global require moodlehq/moodle-cs",
			parse:       phpcsVersionRe,
		},
		{
			name:        constants.ToolMySQL,
			command:     constants.ToolMySQL,
			installHint: "Install the MySQL or MariaDB client (only needed for mysqli/mariadb)",
			parse:       mysqlVersionRe,
		},
		{
			name:        constants.ToolPSQL,
			command:     constants.ToolPSQL,
			installHint: "Install the PostgreSQL client (only needed for pgsql)",
			parse:       psqlVersionRe,
		},
	}
}

// Detect checks all configured tools concurrently and returns their status
// in a stable order.
func (d *DefaultToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	detectCtx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	configs := d.toolConfigs()
	tools := make([]Tool, len(configs))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(detectCtx)
	for i, cfg := range configs {
		g.Go(func() error {
			tool := d.detectTool(gCtx, cfg)
			mu.Lock()
			tools[i] = tool
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}

	result := &ToolDetectionResult{Tools: tools}
	result.HasMissingRequired = len(result.MissingRequiredTools()) > 0
	return result, nil
}

// detectTool detects a single tool's status.
func (d *DefaultToolDetector) detectTool(ctx context.Context, cfg toolConfig) Tool {
	tool := Tool{
		Name:        cfg.name,
		Required:    cfg.required,
		Constraint:  cfg.constraint,
		InstallHint: cfg.installHint,
		Status:      ToolStatusMissing,
	}

	if _, err := d.executor.LookPath(cfg.command); err != nil {
		return tool
	}

	output, err := d.executor.Run(ctx, cfg.command, constants.VersionFlagStandard)
	tool.Status = ToolStatusInstalled
	tool.CurrentVersion = "unknown"
	if err != nil {
		// Present but the version probe failed: treat as installed.
		return tool
	}

	version := ParseVersion(cfg.parse, output)
	if version == "" {
		return tool
	}
	tool.CurrentVersion = version

	if cfg.constraint != "" && !SatisfiesConstraint(version, cfg.constraint) {
		tool.Status = ToolStatusOutdated
	}
	return tool
}

// ParseVersion extracts the first version captured by re from output.
func ParseVersion(re *regexp.Regexp, output string) string {
	if matches := re.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// SatisfiesConstraint reports whether version meets the semver constraint.
// Unparseable input never satisfies.
func SatisfiesConstraint(version, constraint string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// FormatMissingToolsError creates a formatted error message for missing tools.
func FormatMissingToolsError(missing []Tool) string {
	if len(missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing required tools:\n\n")

	for _, tool := range missing {
		status := "missing"
		if tool.Status == ToolStatusOutdated {
			status = fmt.Sprintf("outdated (have %s, need %s)", tool.CurrentVersion, tool.Constraint)
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s\n", tool.Name, status))
		sb.WriteString(fmt.Sprintf("    Install: %s\n\n", tool.InstallHint))
	}

	return sb.String()
}
