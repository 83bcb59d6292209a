package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/tui"
)

func newToolsCmd(flags *GlobalFlags, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Report the external tools install and codechecker need",
		Long: `Probe git, php, composer, npm, phpcs and the database clients, report
their versions and whether they satisfy the minimum versions.

Exits 1 when a required tool is missing or outdated.

Examples:
  moodle-plugin-ci tools
  moodle-plugin-ci tools --output json`,
		Args: inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTools(cmd.Context(), tui.NewOutput(cmd.OutOrStdout(), flags.Output), d)
		},
	}
}

func runTools(ctx context.Context, out tui.Output, d deps) error {
	cfg, err := loadConfig(ctx, d, &config.Config{})
	if err != nil {
		return err
	}

	result, err := config.NewToolDetectorWithExecutor(cfg, d.toolExecutor).Detect(ctx)
	if err != nil {
		return err
	}

	_, isJSON := out.(*tui.JSONOutput)
	if isJSON {
		if err := out.JSON(result); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(result.Tools))
		for _, tool := range result.Tools {
			required := "no"
			if tool.Required {
				required = "yes"
			}
			rows = append(rows, []string{tool.Name, tool.Status.String(), tool.CurrentVersion, tool.Constraint, required})
		}
		out.Table([]string{"TOOL", "STATUS", "VERSION", "MINIMUM", "REQUIRED"}, rows)
	}

	missing := result.MissingRequiredTools()
	if len(missing) == 0 {
		if !isJSON {
			out.Success("All required tools are available")
		}
		return nil
	}

	if !isJSON {
		out.Line(strings.TrimRight(config.FormatMissingToolsError(missing), "\n"))
	}
	return reported(errors.ErrMissingRequiredTools)
}
