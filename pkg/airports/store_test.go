package airports

import (
	"errors"
	"testing"
)

func testAirport(id string) Airport {
	return Airport{AirportID: id, AirportName: "Test Field", City: "Testville"}
}

func TestCreateThenListContainsRecordOnce(t *testing.T) {
	store := NewSeededStore(false)

	if err := store.Create(testAirport("dd")); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	list := store.List(-1)
	if len(list) != 4 {
		t.Fatalf("expected 4 records, got %d", len(list))
	}
	count := 0
	for _, a := range list {
		if a.AirportID == "dd" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected dd exactly once, got %d", count)
	}
	if list[3].AirportID != "dd" {
		t.Fatalf("expected dd appended last, got %q", list[3].AirportID)
	}
	if list[3].CountryState != nil {
		t.Fatalf("expected nil country_state, got %q", *list[3].CountryState)
	}
}

func TestCreateDuplicateKeepsFirst(t *testing.T) {
	store := NewMemStore()
	first := testAirport("dd")
	if err := store.Create(first); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	second := first
	second.AirportName = "Other Field"
	err := store.Create(second)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, _ := store.Get("dd")
	if got.AirportName != "Test Field" {
		t.Fatalf("stored record was replaced: %#v", got)
	}
}

func TestPutUpserts(t *testing.T) {
	store := NewSeededStore(false)

	if created := store.Put(testAirport("zz")); !created {
		t.Fatalf("expected put of new id to report creation")
	}
	replacement := Airport{AirportID: "aa", AirportName: "Renamed", City: "Somewhere"}
	if created := store.Put(replacement); created {
		t.Fatalf("expected put of existing id to report replacement")
	}

	list := store.List(-1)
	if list[0].AirportName != "Renamed" {
		t.Fatalf("expected replacement in place, got %#v", list[0])
	}
	if list[0].CountryState != nil {
		t.Fatalf("full replace should drop country_state, got %q", *list[0].CountryState)
	}
	if list[len(list)-1].AirportID != "zz" {
		t.Fatalf("expected new record appended, got %#v", list)
	}
}

func TestPatchMissingLeavesRegistryUnchanged(t *testing.T) {
	store := NewSeededStore(false)
	before := store.List(-1)

	_, err := store.Patch(Patch{AirportID: "zz", City: StringPtr("Nowhere")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := store.List(-1)
	if len(after) != len(before) {
		t.Fatalf("registry size changed: %d -> %d", len(before), len(after))
	}
	for idx := range before {
		if before[idx].AirportID != after[idx].AirportID || before[idx].City != after[idx].City {
			t.Fatalf("registry changed at %d: %#v -> %#v", idx, before[idx], after[idx])
		}
	}
}

func TestPatchCityOnly(t *testing.T) {
	store := NewSeededStore(false)

	updated, err := store.Patch(Patch{AirportID: "aa", City: StringPtr("New City")})
	if err != nil {
		t.Fatalf("patch returned error: %v", err)
	}
	if updated.City != "New City" {
		t.Fatalf("city not updated: %#v", updated)
	}
	if updated.AirportName != "To Sky Airport" {
		t.Fatalf("airport_name changed: %q", updated.AirportName)
	}
	if updated.CountryState == nil || *updated.CountryState != "US Alaska" {
		t.Fatalf("country_state changed: %v", updated.CountryState)
	}
}

func TestPatchClearsCountryState(t *testing.T) {
	store := NewSeededStore(false)

	updated, err := store.Patch(Patch{AirportID: "bb", SetCountryState: true})
	if err != nil {
		t.Fatalf("patch returned error: %v", err)
	}
	if updated.CountryState != nil {
		t.Fatalf("expected country_state cleared, got %q", *updated.CountryState)
	}
}

func TestDeleteTwice(t *testing.T) {
	store := NewSeededStore(false)

	if _, err := store.Delete("bb"); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}
	if _, err := store.Delete("bb"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	list := store.List(-1)
	if len(list) != 2 || list[0].AirportID != "aa" || list[1].AirportID != "cc" {
		t.Fatalf("unexpected order after delete: %#v", list)
	}
}

func TestListLimit(t *testing.T) {
	store := NewSeededStore(false)

	cases := []struct {
		limit int
		want  []string
	}{
		{limit: 0, want: []string{}},
		{limit: 2, want: []string{"aa", "bb"}},
		{limit: 3, want: []string{"aa", "bb", "cc"}},
		{limit: 50, want: []string{"aa", "bb", "cc"}},
		{limit: -1, want: []string{"aa", "bb", "cc"}},
	}

	for _, tc := range cases {
		got := store.List(tc.limit)
		if got == nil {
			t.Fatalf("limit %d: expected empty slice, got nil", tc.limit)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("limit %d: expected %d records, got %d", tc.limit, len(tc.want), len(got))
		}
		for idx, id := range tc.want {
			if got[idx].AirportID != id {
				t.Fatalf("limit %d: position %d expected %q, got %q", tc.limit, idx, id, got[idx].AirportID)
			}
		}
	}
}

func TestLegacySeedKeys(t *testing.T) {
	store := NewSeededStore(true)

	if _, ok := store.Get("a"); !ok {
		t.Fatalf("expected legacy key a")
	}
	if _, ok := store.Get("aa"); ok {
		t.Fatalf("legacy seeding should not key by airport_id")
	}
	if err := store.Create(testAirport("aa")); err != nil {
		t.Fatalf("create aa under legacy keys returned error: %v", err)
	}
	if store.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", store.Len())
	}
}
