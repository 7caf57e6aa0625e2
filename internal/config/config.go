package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
// El default de JWT_SECRET existe solo para desarrollo: en producción debe
// inyectarse un secreto de al menos 256 bits.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"mySecretKeyForJWTTokenGenerationInBCI12345"`
	JWTTTLHours   int    `env:"JWT_TTL_HOURS" envDefault:"24"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
