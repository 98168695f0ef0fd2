// Package config provides configuration loading and validation for shelf.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SHELF_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with SHELF_ prefix:
//   - server.port → SHELF_SERVER_PORT
//   - static.root → SHELF_STATIC_ROOT
//   - log.level → SHELF_LOG_LEVEL
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Index filename must be non-empty
//   - Log level must be debug, info, warn, or error
package config
