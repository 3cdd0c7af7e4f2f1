package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/safejson"
)

func writeCmd() *cobra.Command {
	var (
		data       string
		indent     int
		ascii      bool
		noBackup   bool
		noAtomic   bool
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write a JSON document from stdin or --data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(data)
			if data == "" {
				var err error
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			doc, err := safejson.ParseDocument(raw)
			if err != nil {
				return fmt.Errorf("invalid input JSON: %w", err)
			}

			opts := safejson.DefaultWriteOptions()
			opts.Indent = indent
			opts.EnsureASCII = ascii
			opts.Backup = !noBackup
			opts.Atomic = !noAtomic
			if schemaFile != "" {
				schema, err := safejson.LoadSchemaFile(schemaFile)
				if err != nil {
					return err
				}
				opts.Schema = schema
			}

			return printResult(store.Write(doc, args[0], &opts))
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "document JSON (default: read stdin)")
	cmd.Flags().IntVar(&indent, "indent", 4, "spaces per nesting level (0 = compact)")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "escape non-ASCII characters as \\uXXXX")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-write backup")
	cmd.Flags().BoolVar(&noAtomic, "no-atomic", false, "write in place instead of temp-and-rename")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema file overriding the store schema")
	return cmd
}
