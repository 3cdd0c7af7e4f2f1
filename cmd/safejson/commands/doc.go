// Package commands defines the safejson CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - read   Read a JSON file and print the result
//   - write  Write a JSON document from stdin or --data
//   - check  Validate a JSON file without printing its contents
//
// # Implementation
//
// The root command loads SAFEJSON_* environment variables as flag
// defaults, then builds the logger, the optional store schema, and the
// store itself before any subcommand runs. Results print to stdout as
// JSON; logs go to stderr; a failed operation exits nonzero.
package commands
