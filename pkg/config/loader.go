package config

import (
	"errors"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into v. A .env file in the working
// directory is read once per process if it exists; variables already set
// in the environment win over the file.
//
//	var cfg struct {
//		Address string `env:"ADDRESS" envDefault:":8080"`
//	}
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// a missing .env is normal outside local development
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadEnv reads the given env files into the process environment. Earlier
// files win over later ones; variables already set are kept. Missing files
// are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Join(ErrEnvFile, err)
		}
	}
	return nil
}
