package commands

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/safejson"
)

func checkCmd() *cobra.Command {
	var (
		stream     bool
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a JSON file without printing its contents",
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
			res := store.Read(args[0], opts)
			res.Data = nil
			return printResult(res)
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "parse the file incrementally")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema file overriding the store schema")
	return cmd
}
