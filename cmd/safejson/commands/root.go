package commands

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/safejson"
	"github.com/GriffinCanCode/safejson/internal/config"
	"github.com/GriffinCanCode/safejson/internal/logging"
)

var (
	basePath   string
	schemaPath string
	charset    string
	maxSize    int64
	logLevel   string
	devMode    bool
	silent     bool

	store  *safejson.Store
	logger *zap.Logger
)

func Execute() error {
	cfg := config.LoadOrDefault()

	root := &cobra.Command{
		Use:          "safejson",
		Short:        "Defensive JSON file store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if silent {
				logger = zap.NewNop()
			} else {
				logger, err = logging.New(logging.Config{
					Level:       logLevel,
					Development: devMode,
				})
				if err != nil {
					return err
				}
			}

			var schema *safejson.Schema
			if schemaPath != "" {
				schema, err = safejson.LoadSchemaFile(schemaPath)
				if err != nil {
					return err
				}
			}

			store, err = safejson.New(safejson.Config{
				BasePath: basePath,
				Schema:   schema,
				Encoding: charset,
				MaxSize:  maxSize,
				Logger:   logger,
				Silent:   silent,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&basePath, "base", cfg.Store.BasePath, "containment root; paths outside it are rejected")
	root.PersistentFlags().StringVar(&schemaPath, "store-schema", cfg.Store.SchemaPath, "schema file applied to every operation")
	root.PersistentFlags().StringVar(&charset, "encoding", cfg.Store.Encoding, "on-disk text encoding (default UTF-8)")
	root.PersistentFlags().Int64Var(&maxSize, "max-size", cfg.Store.MaxSize, "readable file size cap in bytes")
	root.PersistentFlags().StringVar(&logLevel, "log-level", cfg.Logging.Level, "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&devMode, "dev", cfg.Logging.Development, "console logs with debug detail")
	root.PersistentFlags().BoolVar(&silent, "silent", cfg.Logging.Silent, "suppress all log output")

	root.AddCommand(readCmd(), writeCmd(), checkCmd())
	return root.Execute()
}

// printResult renders res as indented JSON on stdout. A failed
// operation also becomes the command error so the process exits
// nonzero.
func printResult(res safejson.Result) error {
	out, err := sonic.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if !res.Success {
		return errors.New(*res.Error)
	}
	return nil
}
