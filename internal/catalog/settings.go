package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/raidho/internal/apperr"
)

// Settings keys.
const (
	SettingLanguage = "language"

	// DefaultLanguage is returned when no language preference is stored.
	DefaultLanguage = "en"
)

// Setting returns the stored value for key, or apperr.ErrNotFound when
// no row exists.
func (db *DB) Setting(key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("catalog: get setting %s: %w", key, err)
	}
	return v, nil
}

// SetSetting stores or replaces the value for key.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("catalog: set setting %s: %w", key, err)
	}
	return nil
}

// Language returns the persisted UI language preference, defaulting to
// DefaultLanguage when none has been set.
func Language(s Store) (string, error) {
	v, err := s.Setting(SettingLanguage)
	if errors.Is(err, apperr.ErrNotFound) {
		return DefaultLanguage, nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// SetLanguage persists the UI language preference.
func SetLanguage(s Store, lang string) error {
	return s.SetSetting(SettingLanguage, lang)
}
