package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"
)

//go:embed locales/*.json
var embedded embed.FS

// Catalog holds one read-only dictionary per supported locale. It is loaded
// once at startup and shared.
type Catalog struct {
	dicts map[Locale]Value
}

// NewCatalog builds a catalog from already decoded dictionaries.
func NewCatalog(dicts map[Locale]Value) *Catalog {
	c := &Catalog{dicts: make(map[Locale]Value, len(dicts))}
	for l, v := range dicts {
		c.dicts[l] = v
	}
	return c
}

// DefaultCatalog loads the dictionaries compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(embedded, "locales")
}

// LoadCatalog reads <dir>/<locale>.json (or .yaml / .yml) for every supported
// locale. A missing locale is an error.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	dicts := make(map[Locale]Value, len(Supported))
	for _, l := range Supported {
		data, err := readDictionary(fsys, dir, l)
		if err != nil {
			return nil, err
		}
		v, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", l, err)
		}
		dicts[l] = v
	}
	return NewCatalog(dicts), nil
}

func readDictionary(fsys fs.FS, dir string, l Locale) ([]byte, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		data, err := fs.ReadFile(fsys, path.Join(dir, string(l)+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read dictionary for %s: %w", l, err)
		}
	}
	return nil, fmt.Errorf("no dictionary for locale %s in %s", l, dir)
}

// Dictionary returns the root of a locale's dictionary, absent if unknown.
func (c *Catalog) Dictionary(l Locale) Value {
	if c == nil {
		return Value{}
	}
	return c.dicts[l]
}

// Localizer binds the catalog to one locale.
func (c *Catalog) Localizer(l Locale) Localizer {
	return Localizer{locale: l, dict: c.Dictionary(l)}
}

// =============================================================================
// LOCALIZER
// =============================================================================

// Localizer resolves strings for a single locale. It is a small immutable
// value, safe to copy and share.
type Localizer struct {
	locale Locale
	dict   Value
}

// Locale returns the bound locale.
func (l Localizer) Locale() Locale { return l.locale }

// T resolves a string, falling back to the path itself.
func (l Localizer) T(path string) string {
	return ResolveString(l.dict, path, path)
}

// TOr resolves a string with an explicit fallback.
func (l Localizer) TOr(path, fallback string) string {
	return ResolveString(l.dict, path, fallback)
}

// Lookup is Resolve against the bound dictionary.
func Lookup[T any](l Localizer, path string, fallback T) T {
	return Resolve(l.dict, path, fallback)
}

// MonthYear formats a "Month Year" label, e.g. "February 2024". Month names
// come from dates.months and the layout from dates.monthYear; English names
// are used when the dictionary lacks them.
func (l Localizer) MonthYear(t time.Time) string {
	month := t.Month().String()
	if name := l.TOr("dates.months."+strconv.Itoa(int(t.Month())-1), ""); name != "" {
		month = name
	}

	layout := l.TOr("dates.monthYear", "{month} {year}")
	return strings.NewReplacer(
		"{month}", month,
		"{year}", strconv.Itoa(t.Year()),
	).Replace(layout)
}

// Date formats a numeric date with the layout from dates.date, e.g.
// "15.01.2024". Day and month are zero-padded.
func (l Localizer) Date(t time.Time) string {
	layout := l.TOr("dates.date", "{year}-{month}-{day}")
	return strings.NewReplacer(
		"{day}", fmt.Sprintf("%02d", t.Day()),
		"{month}", fmt.Sprintf("%02d", int(t.Month())),
		"{year}", strconv.Itoa(t.Year()),
	).Replace(layout)
}
