package commands

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) matchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <method> <path>",
		Short: "Find the route matching a path",
		Long: `Find the first route matching a method and path and print the parsed
parameters. Query string parameters are included.

Examples:
  signpost match GET /articles/12
  signpost match GET '/articles/12/intro?ref=home' --json`,
		Args: cobra.ExactArgs(2),
		RunE: c.runMatch,
	}
}

func (c *cli) runMatch(cmd *cobra.Command, args []string) error {
	router, err := c.loadRouter()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	method, path := args[0], args[1]

	route, params, ok := router.Find(path, method)
	if !ok {
		return fmt.Errorf("no route matches %s %s", method, path)
	}

	if c.jsonOutput {
		printSuccess(out, MatchOutput{
			Route:      route.Name(),
			Method:     route.Method(),
			Params:     params,
			Controller: controllerName(route),
		})
		return nil
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(out, "\n  %s %s %s\n", green("✓"), cyan(route.Name()), route.Pattern())

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "    %s = %s\n", key, params[key])
	}
	fmt.Fprintln(out)

	return nil
}
