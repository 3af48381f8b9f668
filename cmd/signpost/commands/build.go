package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <name> [key=value...]",
		Short: "Build the path of a named route",
		Long: `Build a path from a named route and parameters. Parameters the route
does not use are appended as a query string.

Examples:
  signpost build article id=12
  signpost build article id=12 slug=intro ref=home`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runBuild,
	}
}

func (c *cli) runBuild(cmd *cobra.Command, args []string) error {
	params, err := parseParamArgs(args[1:])
	if err != nil {
		return err
	}

	router, err := c.loadRouter()
	if err != nil {
		return err
	}

	path, err := router.Build(args[0], params)
	if err != nil {
		return err
	}

	if c.jsonOutput {
		printSuccess(cmd.OutOrStdout(), BuildOutput{Route: args[0], Path: path})
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", green(path))
	return nil
}

func parseParamArgs(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}
