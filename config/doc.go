// Package config loads service configuration with Viper.
//
// Values come from a YAML file, a .env file and the process environment, in
// increasing order of precedence. Nested keys map to upper-case environment
// variables with dots replaced by underscores, optionally prefixed:
//
//	server.port  ->  SERVER_PORT  (or APP_SERVER_PORT with WithEnvPrefix("APP"))
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("items-api", &cfg)
package config
