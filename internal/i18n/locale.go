package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported UI language.
type Locale string

const (
	Georgian Locale = "ka"
	English  Locale = "en"
	Russian  Locale = "ru"
)

// Supported lists every locale in display order.
var Supported = []Locale{Georgian, English, Russian}

// ParseLocale accepts a supported locale code, case-insensitively.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, s := range Supported {
		if l == s {
			return l, true
		}
	}
	return "", false
}

// Tag returns the regional BCP 47 tag used for date formatting.
func (l Locale) Tag() language.Tag {
	switch l {
	case Georgian:
		return language.MustParse("ka-GE")
	case Russian:
		return language.MustParse("ru-RU")
	default:
		return language.AmericanEnglish
	}
}

// String implements fmt.Stringer.
func (l Locale) String() string { return string(l) }

// =============================================================================
// DETECTION
// =============================================================================

// Detector picks the initial locale for a session.
type Detector struct {
	// Unmatched is used when an environment language is known but is not
	// one of the supported locales.
	Unmatched Locale

	// NoEnvironment is used when there is no environment language at all.
	NoEnvironment Locale
}

// DefaultDetector falls back to English for unknown languages and to
// Georgian when nothing is known about the environment.
func DefaultDetector() Detector {
	return Detector{Unmatched: English, NoEnvironment: Georgian}
}

// Detect chooses a locale. A valid persisted value always wins; otherwise
// the two-letter prefix of the environment language is matched against the
// supported set.
func (d Detector) Detect(persisted, envLanguage string) Locale {
	if l, ok := ParseLocale(persisted); ok {
		return l
	}

	prefix := languagePrefix(envLanguage)
	if prefix == "" {
		return d.NoEnvironment
	}
	if l, ok := ParseLocale(prefix); ok {
		return l
	}
	return d.Unmatched
}

// DetectAcceptLanguage is Detect with an HTTP Accept-Language header as the
// environment. Preferences are tried in quality order.
func (d Detector) DetectAcceptLanguage(persisted, header string) Locale {
	if l, ok := ParseLocale(persisted); ok {
		return l
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return d.Detect("", header)
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if l, ok := ParseLocale(base.String()); ok {
			return l
		}
	}
	return d.Unmatched
}

// languagePrefix reduces a language preference such as "ka-GE",
// "en_US.UTF-8" or "ru" to its lower-case two-letter base.
func languagePrefix(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return ""
	}

	if tag, err := language.Parse(s); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}

	s = strings.ToLower(s)
	if len(s) > 2 {
		s = s[:2]
	}
	return s
}

// EnvironmentLanguage reads the process language preference from the usual
// POSIX variables. getenv is typically os.Getenv.
func EnvironmentLanguage(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}
