package commands

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/safejson"
)

func readCmd() *cobra.Command {
	var (
		stream     bool
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Read a JSON file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &safejson.ReadOptions{Streaming: stream}
			if schemaFile != "" {
				schema, err := safejson.LoadSchemaFile(schemaFile)
				if err != nil {
					return err
				}
				opts.Schema = schema
			}
			return printResult(store.Read(args[0], opts))
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "parse the file incrementally")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema file overriding the store schema")
	return cmd
}
