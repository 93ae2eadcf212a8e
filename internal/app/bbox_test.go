package app_test

import (
	"errors"
	"reflect"
	"testing"

	"airport_lookup/internal/app"
	"airport_lookup/internal/domain"
)

var (
	sydney = domain.Airport{Name: "Sydney", Latitude: -33.95, Longitude: 151.18, IATACode: "SYD"}
	darwin = domain.Airport{Name: "Darwin", Latitude: -12.42, Longitude: 130.88, IATACode: "DRW"}
)

func TestWithin_Example(t *testing.T) {
	tbl := domain.NewTable([]domain.Airport{sydney, darwin})
	got := app.Within(tbl, domain.Coord{Lat: -35, Lon: 150}, domain.Coord{Lat: -33, Lon: 152})
	if !reflect.DeepEqual(got, []domain.Airport{sydney}) {
		t.Fatalf("got %+v", got)
	}
}

func TestWithin_InclusiveCorners(t *testing.T) {
	ll := domain.Coord{Lat: -10, Lon: 20}
	ur := domain.Coord{Lat: 10, Lon: 40}
	tbl := domain.NewTable([]domain.Airport{
		{Name: "ll", Latitude: ll.Lat, Longitude: ll.Lon, IATACode: "LLL"},
		{Name: "ur", Latitude: ur.Lat, Longitude: ur.Lon, IATACode: "UUU"},
		{Name: "edge", Latitude: 0, Longitude: ur.Lon, IATACode: "EEE"},
	})
	if got := app.Within(tbl, ll, ur); len(got) != 3 {
		t.Fatalf("expected all boundary points, got %+v", got)
	}
}

func TestWithin_ExcludesJustOutside(t *testing.T) {
	ll := domain.Coord{Lat: -10, Lon: 20}
	ur := domain.Coord{Lat: 10, Lon: 40}
	for _, eps := range []float64{1, 1e-6, 1e-9} {
		tbl := domain.NewTable([]domain.Airport{
			{Name: "south", Latitude: ll.Lat - eps, Longitude: ll.Lon, IATACode: "SSS"},
			{Name: "west", Latitude: ll.Lat, Longitude: ll.Lon - eps, IATACode: "WWW"},
			{Name: "north", Latitude: ur.Lat + eps, Longitude: ur.Lon, IATACode: "NNN"},
			{Name: "east", Latitude: ur.Lat, Longitude: ur.Lon + eps, IATACode: "EEE"},
		})
		if got := app.Within(tbl, ll, ur); len(got) != 0 {
			t.Fatalf("eps=%g: expected no matches, got %+v", eps, got)
		}
	}
}

func TestWithin_PreservesOrder(t *testing.T) {
	recs := []domain.Airport{
		{Name: "c", Latitude: 3, Longitude: 3, IATACode: "CCC"},
		{Name: "out", Latitude: 50, Longitude: 50, IATACode: "OUT"},
		{Name: "a", Latitude: 1, Longitude: 1, IATACode: "AAA"},
		{Name: "b", Latitude: 2, Longitude: 2, IATACode: "BBB"},
	}
	got := app.Within(domain.NewTable(recs), domain.Coord{Lat: 0, Lon: 0}, domain.Coord{Lat: 10, Lon: 10})
	want := []domain.Airport{recs[0], recs[2], recs[3]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestWithin_InvertedBoxIsEmpty(t *testing.T) {
	tbl := domain.NewTable([]domain.Airport{sydney, darwin})
	got := app.Within(tbl, domain.Coord{Lat: -33, Lon: 152}, domain.Coord{Lat: -35, Lon: 150})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestParseBoundingBox(t *testing.T) {
	box, err := app.ParseBoundingBox("-35", " 150 ", "-33", "152.5")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if box.LowerLeft() != (domain.Coord{Lat: -35, Lon: 150}) || box.UpperRight() != (domain.Coord{Lat: -33, Lon: 152.5}) {
		t.Fatalf("unexpected box %+v", box)
	}

	// corners are kept as given
	box, err = app.ParseBoundingBox("10", "10", "-10", "-10")
	if err != nil || box.LatMin != 10 || box.LatMax != -10 {
		t.Fatalf("corners must not be normalised: %+v %v", box, err)
	}

	for _, in := range [][4]string{
		{"", "1", "2", "3"},
		{"1", "x", "2", "3"},
		{"1", "1", "Inf", "3"},
		{"1", "1", "2", "NaN"},
	} {
		if _, err := app.ParseBoundingBox(in[0], in[1], in[2], in[3]); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("%q: expected invalid argument, got %v", in, err)
		}
	}
}
