package games

import (
	"errors"
	"testing"
)

func TestByAppID(t *testing.T) {
	tests := []struct {
		appID string
		want  Option
	}{
		{"570", Dota2},
		{"730", CS},
		{"440", TF2},
		{"753", Gifts}, // first context registered for the app wins
		{"218620", Payday2},
		{"433850", H1Z1},
		{"578080", PUBG},
	}

	for _, tt := range tests {
		got, err := ByAppID(tt.appID)
		if err != nil {
			t.Fatalf("ByAppID(%q) error: %v", tt.appID, err)
		}
		if got != tt.want {
			t.Errorf("ByAppID(%q) = %+v, want %+v", tt.appID, got, tt.want)
		}
	}
}

func TestByAppIDNotSupported(t *testing.T) {
	if _, err := ByAppID("1"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestByName(t *testing.T) {
	got, err := ByName("cards")
	if err != nil {
		t.Fatalf("ByName error: %v", err)
	}
	if got.ContextID != "6" {
		t.Errorf("ContextID = %q, want 6", got.ContextID)
	}
	if _, err := ByName("chess"); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("expected 8 options, got %d", len(all))
	}
	all[0].AppID = "0"
	if got, _ := ByName("DOTA2"); got.AppID != "570" {
		t.Fatal("modifying All() result changed the catalog")
	}
}
