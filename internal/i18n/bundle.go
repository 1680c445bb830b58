package i18n

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"avenqor/internal/domain/value"
)

// Bundle is the full translation set for one locale. Every key is required:
// a bundle with holes fails at startup, not in front of a visitor.
type Bundle struct {
	Locale value.Locale `yaml:"locale" json:"locale" validate:"required,oneof=en ar"`

	Nav struct {
		Courses  string `yaml:"courses" json:"courses" validate:"required"`
		Packs    string `yaml:"packs" json:"packs" validate:"required"`
		Cart     string `yaml:"cart" json:"cart" validate:"required"`
		Account  string `yaml:"account" json:"account" validate:"required"`
		Contact  string `yaml:"contact" json:"contact" validate:"required"`
		SignIn   string `yaml:"signIn" json:"signIn" validate:"required"`
		SignOut  string `yaml:"signOut" json:"signOut" validate:"required"`
		Register string `yaml:"register" json:"register" validate:"required"`
	} `yaml:"nav" json:"nav"`

	Pricing struct {
		QuoteTitle    string `yaml:"quoteTitle" json:"quoteTitle" validate:"required"`
		TokensLabel   string `yaml:"tokensLabel" json:"tokensLabel" validate:"required"`
		PriceLabel    string `yaml:"priceLabel" json:"priceLabel" validate:"required"`
		SubmitCourse  string `yaml:"submitCourse" json:"submitCourse" validate:"required"`
		SubmitAI      string `yaml:"submitAi" json:"submitAi" validate:"required"`
		TopUpRequired string `yaml:"topUpRequired" json:"topUpRequired" validate:"required"`
	} `yaml:"pricing" json:"pricing"`

	Cart struct {
		Empty    string `yaml:"empty" json:"empty" validate:"required"`
		Total    string `yaml:"total" json:"total" validate:"required"`
		Checkout string `yaml:"checkout" json:"checkout" validate:"required"`
		Remove   string `yaml:"remove" json:"remove" validate:"required"`
	} `yaml:"cart" json:"cart"`

	Auth struct {
		EmailLabel     string `yaml:"emailLabel" json:"emailLabel" validate:"required"`
		PasswordLabel  string `yaml:"passwordLabel" json:"passwordLabel" validate:"required"`
		ForgotPassword string `yaml:"forgotPassword" json:"forgotPassword" validate:"required"`
		ResetSent      string `yaml:"resetSent" json:"resetSent" validate:"required"`
	} `yaml:"auth" json:"auth"`

	Errors struct {
		Generic             string `yaml:"generic" json:"generic" validate:"required"`
		Validation          string `yaml:"validation" json:"validation" validate:"required"`
		InsufficientBalance string `yaml:"insufficientBalance" json:"insufficientBalance" validate:"required"`
	} `yaml:"errors" json:"errors"`
}

// Catalog holds one validated bundle per supported locale.
type Catalog struct {
	bundles map[value.Locale]Bundle
}

// LoadCatalog reads <dir>/<locale>.yaml for every supported locale. All
// bundles must be present and complete.
func LoadCatalog(dir string) (*Catalog, error) {
	validate := validator.New()
	bundles := make(map[value.Locale]Bundle)

	for _, locale := range []value.Locale{value.LocaleEN, value.LocaleAR} {
		path := filepath.Join(dir, locale.String()+".yaml")

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read bundle %s: %w", path, err)
		}

		var bundle Bundle

		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)

		if err := decoder.Decode(&bundle); err != nil {
			return nil, fmt.Errorf("parse bundle %s: %w", path, err)
		}

		if err := validate.Struct(bundle); err != nil {
			return nil, fmt.Errorf("bundle %s is incomplete: %w", path, err)
		}

		if bundle.Locale != locale {
			return nil, fmt.Errorf("bundle %s declares locale %q", path, bundle.Locale)
		}

		bundles[locale] = bundle
	}

	return &Catalog{bundles: bundles}, nil
}

// Bundle returns the translations for a locale, falling back to the default
// locale for anything unsupported.
func (c *Catalog) Bundle(locale value.Locale) Bundle {
	if bundle, ok := c.bundles[locale]; ok {
		return bundle
	}

	return c.bundles[value.DefaultLocale]
}
