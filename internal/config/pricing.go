package config

// Pricing points at the optional weights/rates override file. An empty path
// means the compiled-in defaults.
type Pricing struct {
	ConfigPath string `env:"PRICING_CONFIG_PATH"`
}
