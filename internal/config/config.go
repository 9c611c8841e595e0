package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio. Personas y rasgos viven en
// stores configurados de forma independiente, cada uno con un default conocido.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	PersonsDatabaseURL string `env:"PERSONS_DATABASE_URL" envDefault:"postgres://localhost:5432/traits_persons"`
	TraitsDatabaseURL  string `env:"TRAITS_DATABASE_URL" envDefault:"postgres://localhost:5432/traits_traits"`

	RedisAddr            string `env:"REDIS_ADDR"`
	RedisPassword        string `env:"REDIS_PASSWORD"`
	RedisDB              int    `env:"REDIS_DB" envDefault:"0"`
	TraitCacheTTLMinutes int    `env:"TRAIT_CACHE_TTL_MINUTES" envDefault:"10"`

	AuthSecret          string `env:"AUTH_SECRET"`
	AuthTokenTTLMinutes int    `env:"AUTH_TOKEN_TTL_MINUTES" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
