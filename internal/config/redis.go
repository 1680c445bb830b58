package config

import "time"

type Redis struct {
	Address  string `env:"REDIS_ADDRESS,notEmpty"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD" json:"-"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	CartTTL time.Duration `env:"REDIS_CART_TTL" envDefault:"720h"`
}
