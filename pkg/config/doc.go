// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (an optional .env file in the working
// directory) and github.com/caarlos0/env/v11 (struct tag parsing). Every
// configuration type is parsed once and cached for the life of the process,
// so packages can call Load for their own config struct without coordinating:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Nested structs are supported, which is how the storefront binary composes
// the cookie, session, commerce and redis settings into one value.
//
// ResetCache drops the cache; tests use it after changing the environment.
package config
