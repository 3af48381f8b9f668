// Package commands provides the CLI commands for signpost.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/RobertWHurst/signpost"
	"github.com/RobertWHurst/signpost/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by the commands of one root command.
type cli struct {
	settings   *viper.Viper
	configFile string
	jsonOutput bool
}

// NewRootCommand creates the signpost root command with every subcommand.
func NewRootCommand() *cobra.Command {
	c := &cli{settings: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "signpost",
		Short: "signpost - compile, match, and build route patterns",
		Long: `signpost compiles route patterns such as /articles/<id>(/<slug>) into
matchers and path builders.

Quick Start:
  signpost routes                        List the routes in routes.yaml
  signpost match GET /articles/12        Find the route matching a path
  signpost build article id=12           Build the path of a named route
  signpost bundle --format msgpack       Write the encoded route bundle
  signpost serve                         Serve the bundle and resolve paths

Settings are read from ./signpost.yaml and SIGNPOST_* environment
variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadSettings()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "Config file (default ./signpost.yaml)")
	flags.BoolVar(&c.jsonOutput, "json", false, "Output in JSON format")
	flags.String("routes", "routes.yaml", "Route definition file")
	_ = c.settings.BindPFlag("routes", flags.Lookup("routes"))

	rootCmd.AddCommand(c.routesCommand())
	rootCmd.AddCommand(c.matchCommand())
	rootCmd.AddCommand(c.buildCommand())
	rootCmd.AddCommand(c.bundleCommand())
	rootCmd.AddCommand(c.serveCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput, _ := rootCmd.PersistentFlags().GetBool("json"); jsonOutput {
			printJSONError(rootCmd.OutOrStdout(), err)
		} else {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(os.Stderr, "  %s %v\n", red("Error:"), err)
		}
		os.Exit(1)
	}
}

func (c *cli) loadSettings() error {
	s := c.settings
	s.SetDefault("routes", "routes.yaml")
	s.SetDefault("listen", ":8080")
	s.SetDefault("nats", "")
	s.SetDefault("service", "signpost")
	s.SetDefault("format", "json")

	s.SetEnvPrefix("SIGNPOST")
	s.AutomaticEnv()

	if c.configFile != "" {
		s.SetConfigFile(c.configFile)
	} else {
		s.SetConfigName("signpost")
		s.SetConfigType("yaml")
		s.AddConfigPath(".")
	}

	if err := s.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

func (c *cli) loadRouter() (*signpost.Router, error) {
	file, err := config.LoadRoutes(c.settings.GetString("routes"))
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}
	return file.Router()
}
