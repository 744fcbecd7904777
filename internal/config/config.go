// Package config loads the server configuration.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. config.yaml in the search paths ("." and "./config" unless overridden)
//  3. a .env file in the search paths (never overrides variables already set)
//  4. environment variables, prefixed BLOGAPI_ with dots as underscores,
//     e.g. BLOGAPI_DATABASE_DRIVER=mongo
//
// The result is checked with validator before it is returned.
package config

import "time"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"required,oneof=text json"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the store. Only the fields of the chosen driver matter.
type DatabaseConfig struct {
	Driver        string `mapstructure:"driver" validate:"required,oneof=sqlite mongo"`
	SQLitePath    string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	MongoURI      string `mapstructure:"mongo_uri" validate:"required_if=Driver mongo"`
	MongoDatabase string `mapstructure:"mongo_database" validate:"required_if=Driver mongo"`
}

// AuthConfig selects how bearer tokens are verified.
//
//	any    → any non-empty token
//	jwt    → HS256 token signed with JWTSecret and issued by JWTIssuer
//	github → a GitHub access token, checked against GitHubAPIURL/user
type AuthConfig struct {
	Mode          string `mapstructure:"mode" validate:"required,oneof=any jwt github"`
	JWTSecret     string `mapstructure:"jwt_secret" validate:"required_if=Mode jwt,omitempty,min=16"`
	JWTIssuer     string `mapstructure:"jwt_issuer" validate:"required"`
	GitHubAPIURL  string `mapstructure:"github_api_url" validate:"required,url"`
	HashPasswords bool   `mapstructure:"hash_passwords"`
	BcryptCost    int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}
