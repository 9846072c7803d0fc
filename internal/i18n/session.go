package i18n

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by a Session after Close.
var ErrSessionClosed = errors.New("i18n session closed")

// Session owns the selected locale for one user session. It is created once
// with OpenSession, passed explicitly to whatever renders text, and ended
// with Close.
//
// Session is not safe for concurrent writers; a session belongs to a single
// user.
type Session struct {
	catalog *Catalog
	store   Store
	locale  Locale
	closed  bool
}

// OpenSession reads the persisted preference from store and detects the
// initial locale. envLanguage is the environment's language preference and
// may be empty.
func OpenSession(catalog *Catalog, store Store, detector Detector, envLanguage string) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("i18n: nil catalog")
	}
	if store == nil {
		store = NewMemoryStore()
	}

	persisted, _, err := store.Get(PreferenceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale preference: %w", err)
	}

	return &Session{
		catalog: catalog,
		store:   store,
		locale:  detector.Detect(persisted, envLanguage),
	}, nil
}

// Locale returns the active locale.
func (s *Session) Locale() Locale { return s.locale }

// SetLocale switches the active locale and persists it immediately.
func (s *Session) SetLocale(l Locale) error {
	if s.closed {
		return ErrSessionClosed
	}
	canon, ok := ParseLocale(string(l))
	if !ok {
		return fmt.Errorf("unsupported locale %q", l)
	}
	if err := s.store.Set(PreferenceKey, string(canon)); err != nil {
		return fmt.Errorf("failed to persist locale: %w", err)
	}
	s.locale = canon
	return nil
}

// Localizer returns a resolver bound to the active locale. A Localizer taken
// before SetLocale keeps its old locale.
func (s *Session) Localizer() Localizer {
	return s.catalog.Localizer(s.locale)
}

// T resolves a string in the active locale, falling back to the path.
func (s *Session) T(path string) string {
	return s.Localizer().T(path)
}

// Close ends the session. Later SetLocale calls fail.
func (s *Session) Close() error {
	s.closed = true
	return nil
}
