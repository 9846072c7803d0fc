package i18n

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, doc string) Value {
	t.Helper()
	v, err := Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestResolve(t *testing.T) {
	t.Run("nested number", func(t *testing.T) {
		root := mustDecode(t, `{"a": {"b": 5}}`)
		assert.Equal(t, 5, Resolve(root, "a.b", -1))
	})

	t.Run("missing key returns fallback", func(t *testing.T) {
		root := mustDecode(t, `{"a": {}}`)
		assert.Equal(t, -1, Resolve(root, "a.b", -1))
	})

	t.Run("null intermediate returns fallback", func(t *testing.T) {
		root := mustDecode(t, `{"a": null}`)
		assert.Equal(t, -1, Resolve(root, "a.b", -1))
	})

	t.Run("null leaf returns fallback", func(t *testing.T) {
		root := mustDecode(t, `{"a": {"b": null}}`)
		assert.Equal(t, "fb", Resolve(root, "a.b", "fb"))
	})

	t.Run("scalar cannot be traversed", func(t *testing.T) {
		root := mustDecode(t, `{"a": "text"}`)
		assert.Equal(t, "fb", Resolve(root, "a.b", "fb"))
	})

	t.Run("type mismatch returns fallback", func(t *testing.T) {
		root := mustDecode(t, `{"a": {"b": 5}}`)
		assert.Equal(t, "fb", Resolve(root, "a.b", "fb"))
	})

	t.Run("raw node", func(t *testing.T) {
		root := mustDecode(t, `{"a": {"b": [1, 2]}}`)
		v := Resolve(root, "a.b", Value{})
		assert.Equal(t, KindList, v.Kind())
		assert.Equal(t, 2, v.Len())
	})

	t.Run("list index segments", func(t *testing.T) {
		root := mustDecode(t, `{"items": ["x", "y"]}`)
		assert.Equal(t, "y", ResolveString(root, "items.1", ""))
		assert.Equal(t, "", ResolveString(root, "items.2", ""))
		assert.Equal(t, "", ResolveString(root, "items.-1", ""))
	})

	t.Run("absent root", func(t *testing.T) {
		assert.Equal(t, "fb", ResolveString(Value{}, "a", "fb"))
	})

	t.Run("mapping as plain map", func(t *testing.T) {
		root := mustDecode(t, `{"a": {"b": true}}`)
		m := Resolve[map[string]any](root, "a", nil)
		assert.Equal(t, map[string]any{"b": true}, m)
	})

	t.Run("yaml documents decode too", func(t *testing.T) {
		root := mustDecode(t, "a:\n  b: hello\n")
		assert.Equal(t, "hello", ResolveString(root, "a.b", ""))
	})
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("{not: [valid"))
	assert.Error(t, err)
}

func TestDetector(t *testing.T) {
	d := DefaultDetector()

	tests := []struct {
		name      string
		persisted string
		env       string
		want      Locale
	}{
		{"persisted wins over environment", "ru", "en-US", Russian},
		{"georgian environment", "", "ka-GE", Georgian},
		{"russian environment", "", "ru", Russian},
		{"posix environment", "", "ru_RU.UTF-8", Russian},
		{"invalid persisted value is ignored", "fr", "ka", Georgian},
		{"unmatched environment", "", "de-DE", English},
		{"no environment", "", "", Georgian},
		{"persisted is case insensitive", "EN", "ka", English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.persisted, tt.env))
		})
	}
}

func TestDetector_AcceptLanguage(t *testing.T) {
	d := DefaultDetector()
	assert.Equal(t, Russian, d.DetectAcceptLanguage("", "de;q=0.9, ru;q=0.8"))
	assert.Equal(t, Georgian, d.DetectAcceptLanguage("", "ka-GE,en;q=0.5"))
	assert.Equal(t, English, d.DetectAcceptLanguage("", "fr-FR"))
	assert.Equal(t, Georgian, d.DetectAcceptLanguage("", ""))
	assert.Equal(t, English, d.DetectAcceptLanguage("en", "ka"))
}

func TestEnvironmentLanguage(t *testing.T) {
	env := map[string]string{"LANG": "ka_GE.UTF-8"}
	assert.Equal(t, "ka_GE.UTF-8", EnvironmentLanguage(func(k string) string { return env[k] }))

	env = map[string]string{"LC_ALL": "C", "LANG": "ru_RU"}
	assert.Equal(t, "ru_RU", EnvironmentLanguage(func(k string) string { return env[k] }))

	assert.Empty(t, EnvironmentLanguage(func(string) string { return "" }))
}

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	for _, l := range Supported {
		loc := cat.Localizer(l)
		assert.NotEqual(t, "graduates.title", loc.T("graduates.title"), "locale %s", l)
		months := Lookup(loc, "dates.months", Value{})
		assert.Equal(t, 12, months.Len(), "locale %s", l)
	}

	assert.Equal(t, "კურსდამთავრებულები", cat.Localizer(Georgian).T("graduates.title"))
	assert.Equal(t, "missing.key", cat.Localizer(English).T("missing.key"))
	assert.Equal(t, "fb", cat.Localizer(English).TOr("missing.key", "fb"))
}

func TestLocalizer_MonthYear(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	d := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "February 2024", cat.Localizer(English).MonthYear(d))
	assert.Equal(t, "თებერვალი, 2024", cat.Localizer(Georgian).MonthYear(d))
	assert.Equal(t, "февраль 2024 г.", cat.Localizer(Russian).MonthYear(d))

	empty := NewCatalog(nil)
	assert.Equal(t, "February 2024", empty.Localizer(English).MonthYear(d))
}

func TestLocalizer_Date(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	d := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/05/2024", cat.Localizer(English).Date(d))
	assert.Equal(t, "05.01.2024", cat.Localizer(Georgian).Date(d))
	assert.Equal(t, "05.01.2024", cat.Localizer(Russian).Date(d))
	assert.Equal(t, "2024-01-05", NewCatalog(nil).Localizer(English).Date(d))
}

func TestLoadCatalog(t *testing.T) {
	t.Run("mixed formats", func(t *testing.T) {
		fsys := fstest.MapFS{
			"dicts/ka.json": {Data: []byte(`{"hello": "გამარჯობა"}`)},
			"dicts/en.yaml": {Data: []byte("hello: hi\n")},
			"dicts/ru.yml":  {Data: []byte("hello: привет\n")},
		}
		cat, err := LoadCatalog(fsys, "dicts")
		require.NoError(t, err)
		assert.Equal(t, "hi", cat.Localizer(English).T("hello"))
		assert.Equal(t, "привет", cat.Localizer(Russian).T("hello"))
	})

	t.Run("missing locale", func(t *testing.T) {
		fsys := fstest.MapFS{"dicts/ka.json": {Data: []byte(`{}`)}}
		_, err := LoadCatalog(fsys, "dicts")
		assert.ErrorContains(t, err, "no dictionary for locale en")
	})
}

func TestSession(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	t.Run("persisted preference", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(PreferenceKey, "ru"))

		s, err := OpenSession(cat, store, DefaultDetector(), "en-US")
		require.NoError(t, err)
		assert.Equal(t, Russian, s.Locale())
		assert.Equal(t, "Выпускники", s.T("graduates.title"))
	})

	t.Run("set locale persists and applies", func(t *testing.T) {
		store := NewMemoryStore()
		s, err := OpenSession(cat, store, DefaultDetector(), "ka-GE")
		require.NoError(t, err)
		assert.Equal(t, Georgian, s.Locale())

		before := s.Localizer()
		require.NoError(t, s.SetLocale(English))
		assert.Equal(t, "Graduates", s.T("graduates.title"))
		assert.Equal(t, Georgian, before.Locale())

		v, ok, err := store.Get(PreferenceKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "en", v)
	})

	t.Run("set locale stores the canonical code", func(t *testing.T) {
		store := NewMemoryStore()
		s, err := OpenSession(cat, store, DefaultDetector(), "ka-GE")
		require.NoError(t, err)

		require.NoError(t, s.SetLocale("EN"))
		assert.Equal(t, English, s.Locale())
		assert.Equal(t, "Graduates", s.T("graduates.title"))

		v, _, err := store.Get(PreferenceKey)
		require.NoError(t, err)
		assert.Equal(t, "en", v)
	})

	t.Run("unsupported locale is rejected", func(t *testing.T) {
		s, err := OpenSession(cat, nil, DefaultDetector(), "")
		require.NoError(t, err)
		assert.Error(t, s.SetLocale("fr"))
		assert.Equal(t, Georgian, s.Locale())
	})

	t.Run("closed session", func(t *testing.T) {
		s, err := OpenSession(cat, nil, DefaultDetector(), "")
		require.NoError(t, err)
		require.NoError(t, s.Close())
		assert.ErrorIs(t, s.SetLocale(English), ErrSessionClosed)
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := OpenSession(nil, nil, DefaultDetector(), "")
		assert.Error(t, err)
	})
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	store := NewFileStore(path)

	_, ok, err := store.Get(PreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(PreferenceKey, "ka"))
	require.NoError(t, store.Set("other", "value"))

	reopened := NewFileStore(path)
	v, ok, err := reopened.Get(PreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ka", v)

	v, _, err = reopened.Get("other")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}
