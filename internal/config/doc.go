// Package config provides configuration management for the demo application.
//
// Startup configuration is loaded from environment variables using the env
// package, optionally seeded from a .env file. Values already present in the
// process environment always win over the file. All values have defaults
// suitable for local development.
//
// Runtime information (ENVIRONMENT, HOST) is not part of the startup
// configuration: it is read on every request with LoadRuntime so that the
// info endpoint reflects the environment at request time.
//
// Example usage:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
