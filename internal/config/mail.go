package config

type Mail struct {
	BaseURL      string `env:"MAIL_BASE_URL,notEmpty"`
	APIToken     string `env:"MAIL_API_TOKEN,notEmpty" json:"-"`
	FromName     string `env:"MAIL_FROM_NAME" envDefault:"Avenqor"`
	FromEmail    string `env:"MAIL_FROM_EMAIL,notEmpty"`
	ResetURLBase string `env:"MAIL_RESET_URL_BASE,notEmpty"`
}
