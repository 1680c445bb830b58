package value

import "fmt"

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

const DefaultLocale = LocaleEN

func (l Locale) String() string {
	return string(l)
}

func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleEN, LocaleAR:
		return Locale(s), nil
	default:
		return "", fmt.Errorf("unsupported locale %q", s)
	}
}

// LocaleOrDefault is the lenient variant for cookie values: anything broken
// falls back instead of failing the request.
func LocaleOrDefault(s string) Locale {
	locale, err := ParseLocale(s)
	if err != nil {
		return DefaultLocale
	}

	return locale
}
