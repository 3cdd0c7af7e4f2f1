// Package config provides 12-factor configuration management for the safejson CLI.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Store: containment root, size limit, text encoding, schema file
//   - Logging: log level, output format, silence
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("base path: %s\n", cfg.Store.BasePath)
//
// Environment Variables:
//   - SAFEJSON_BASE_PATH, SAFEJSON_MAX_SIZE, SAFEJSON_ENCODING, SAFEJSON_SCHEMA
//   - SAFEJSON_LOG_LEVEL, SAFEJSON_LOG_DEV, SAFEJSON_SILENT
package config
