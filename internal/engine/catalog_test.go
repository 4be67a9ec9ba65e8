package engine

import (
	"errors"
	"testing"

	"github.com/iliyamo/hotel-reservation-engine/internal/model"
	"github.com/iliyamo/hotel-reservation-engine/internal/repository"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Deluxe King", "deluxe-king"},
		{"The Garden Suite", "garden"}, // noise words dropped
		{"Ocean View Room", "ocean"},   // "view" and "room" are noise
		{"Bed & Breakfast", "bed-and-breakfast"},
		{"  Standard  ", "standard"},
		{"Suite", "suite"}, // all-noise input falls back to the raw slug
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoomTypeID(t *testing.T) {
	got := roomTypeID("grand-plaza", "Deluxe King")
	if got != "grand-plaza_deluxe-king" {
		t.Errorf("roomTypeID = %q", got)
	}
}

// A deactivated room type keeps serving reads but must refuse new
// demand: deactivation only requires that no active bookings exist at
// that moment, so without this gate a later confirm or block would
// land on a type the catalog no longer sells.
func TestEnsureSellableRoomType(t *testing.T) {
	active := model.RoomType{RoomTypeID: "grand-plaza_deluxe-king", IsActive: true}
	if err := ensureSellableRoomType(active); err != nil {
		t.Fatalf("active room type rejected: %v", err)
	}

	retired := model.RoomType{RoomTypeID: "grand-plaza_deluxe-king", IsActive: false}
	err := ensureSellableRoomType(retired)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("inactive room type: err = %v, want ErrConflict", err)
	}
}

func TestMapCatalogCreateErr(t *testing.T) {
	// A name collision is the caller's mistake, not a race to report
	// as a conflict.
	err := mapCatalogCreateErr(repository.ErrConflict, "Deluxe King")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate name: err = %v, want ErrInvalidInput", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Errorf("duplicate name must not map to ErrConflict: %v", err)
	}

	if err := mapCatalogCreateErr(repository.ErrRoomTypeNotFound, "Deluxe King"); !errors.Is(err, ErrNotFound) {
		t.Errorf("not-found passthrough: err = %v, want ErrNotFound", err)
	}
}
