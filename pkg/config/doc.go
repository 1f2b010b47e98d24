// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags; nested structs
// are flattened, so component configs such as redis.Config or
// storage.S3Config can be embedded directly into the server config.
package config
