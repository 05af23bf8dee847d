package ui

import "sync"

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the storage key of the preference.
const ThemeKey = "theme"

// DarkModeClass is added to the body when the dark theme is active.
const DarkModeClass = "dark-mode"

// ParseTheme maps a stored value to a theme; anything other than "dark" is light.
func ParseTheme(raw string) Theme {
	if Theme(raw) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// BodyClass is the class applied to the page body.
func (t Theme) BodyClass() string {
	if t == ThemeDark {
		return DarkModeClass
	}
	return ""
}

// Store is a string key/value store the theme is persisted in.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// CurrentTheme reads the persisted theme, light when unset.
func CurrentTheme(store Store) Theme {
	raw, _ := store.Get(ThemeKey)
	return ParseTheme(raw)
}

// ToggleTheme flips and persists the theme, returning the new value.
func ToggleTheme(store Store) Theme {
	next := CurrentTheme(store).Toggle()
	store.Set(ThemeKey, string(next))
	return next
}
