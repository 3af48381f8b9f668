package commands

import (
	"fmt"

	"github.com/RobertWHurst/signpost"
	jsoncodec "github.com/RobertWHurst/signpost/codec/json"
	msgpackcodec "github.com/RobertWHurst/signpost/codec/msgpack"
	protobufcodec "github.com/RobertWHurst/signpost/codec/protobuf"
	"github.com/spf13/cobra"
)

func (c *cli) bundleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Write the encoded route bundle",
		Long: `Write the route bundle of the route definition file to stdout. A bundle
carries the compiled matcher and builder of every route, and can be loaded
by another process without parsing the patterns again.

Examples:
  signpost bundle > routes.json
  signpost bundle --format msgpack > routes.msgpack`,
		Args: cobra.NoArgs,
		RunE: c.runBundle,
	}

	cmd.Flags().String("format", "json", "Bundle format (json, msgpack, protobuf)")
	_ = c.settings.BindPFlag("format", cmd.Flags().Lookup("format"))

	return cmd
}

func (c *cli) runBundle(cmd *cobra.Command, args []string) error {
	codec, err := codecFor(c.settings.GetString("format"))
	if err != nil {
		return err
	}

	router, err := c.loadRouter()
	if err != nil {
		return err
	}

	data, err := codec.Marshal(router.Bundle())
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if codec.ContentType() == jsoncodec.ContentType {
		fmt.Fprintln(out)
	}
	return nil
}

func codecFor(format string) (signpost.BundleCodec, error) {
	switch format {
	case "json":
		return jsoncodec.Codec{}, nil
	case "msgpack":
		return msgpackcodec.Codec{}, nil
	case "protobuf":
		return protobufcodec.Codec{}, nil
	}
	return nil, fmt.Errorf("unknown bundle format %q", format)
}
