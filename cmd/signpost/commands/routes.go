package commands

import (
	"fmt"

	"github.com/RobertWHurst/signpost"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) routesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the route definition file",
		Long: `List every route of the route definition file in match order, along
with the regular expression each pattern compiles to.

Examples:
  signpost routes
  signpost routes --routes api.yaml --json`,
		Args: cobra.NoArgs,
		RunE: c.runRoutes,
	}
}

func (c *cli) runRoutes(cmd *cobra.Command, args []string) error {
	router, err := c.loadRouter()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if c.jsonOutput {
		output := RoutesOutput{Routes: []RouteOutput{}}
		for _, route := range router.Routes() {
			output.Routes = append(output.Routes, RouteOutput{
				Name:          route.Name(),
				Method:        route.Method(),
				Pattern:       route.Pattern(),
				Params:        route.ParamOrder(),
				MatcherSource: route.MatcherSource(),
				Controller:    controllerName(route),
			})
		}
		output.TotalRoutes = len(output.Routes)
		printSuccess(out, output)
		return nil
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	nameWidth := 0
	for _, route := range router.Routes() {
		nameWidth = max(nameWidth, len(route.Name()))
	}

	fmt.Fprintln(out)
	for _, route := range router.Routes() {
		fmt.Fprintf(out, "  %s %s %s", green(fmt.Sprintf("%-6s", route.Method())),
			cyan(fmt.Sprintf("%-*s", nameWidth, route.Name())), route.Pattern())
		if controller := controllerName(route); controller != "" {
			fmt.Fprintf(out, " %s", dim("-> "+controller))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s\n", dim(fmt.Sprintf("%-6s %-*s %s", "", nameWidth, "", route.MatcherSource())))
	}
	fmt.Fprintf(out, "\n  %d routes\n\n", len(router.Routes()))

	return nil
}

func controllerName(route *signpost.Route) string {
	switch data := route.Data().(type) {
	case signpost.ControllerNamer:
		return data.ControllerName()
	case string:
		return data
	}
	return ""
}
