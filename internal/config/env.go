package config

import "github.com/kelseyhightower/envconfig"

// Env carries environment overrides (FINECRON_*). Explicit CLI flags win
// over both the file and the environment.
type Env struct {
	Config   string `envconfig:"CONFIG"`
	DB       string `envconfig:"DB"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("finecron", &e); err != nil {
		return Env{}, err
	}
	return e, nil
}
