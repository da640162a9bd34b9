package catalog

import (
	"errors"
	"testing"

	"github.com/starford/raidho/internal/apperr"
)

func TestSettingNotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.Setting("missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetSettingUpserts(t *testing.T) {
	db := testDB(t)

	if err := db.SetSetting("theme", "dark"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := db.SetSetting("theme", "light"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	v, err := db.Setting("theme")
	if err != nil {
		t.Fatal(err)
	}
	if v != "light" {
		t.Errorf("value = %q, want %q", v, "light")
	}
}

func TestLanguageDefaultsWhenUnset(t *testing.T) {
	db := testDB(t)

	lang, err := Language(db)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != DefaultLanguage {
		t.Errorf("lang = %q, want %q", lang, DefaultLanguage)
	}
}

func TestLanguageRoundTrip(t *testing.T) {
	db := testDB(t)

	if err := SetLanguage(db, "pl"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, err := Language(db)
	if err != nil {
		t.Fatal(err)
	}
	if lang != "pl" {
		t.Errorf("lang = %q, want %q", lang, "pl")
	}
}
