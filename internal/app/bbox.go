package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"airport_lookup/internal/domain"
)

// Within returns the airports inside the closed rectangle spanned by
// lowerLeft and upperRight, in table order. Corners are not reordered: an
// inverted box matches nothing.
func Within(t domain.Table, lowerLeft, upperRight domain.Coord) []domain.Airport {
	box := domain.NewBoundingBox(lowerLeft, upperRight)
	out := []domain.Airport{}
	for i := 0; i < t.Len(); i++ {
		a := t.At(i)
		if box.Contains(domain.Coord{Lat: a.Latitude, Lon: a.Longitude}) {
			out = append(out, a)
		}
	}
	return out
}

// ParseBoundingBox builds a box from the lat1/lon1/lat2/lon2 request values.
func ParseBoundingBox(lat1, lon1, lat2, lon2 string) (domain.BoundingBox, error) {
	var vals [4]float64
	for i, p := range []struct{ name, v string }{
		{"lat1", lat1}, {"lon1", lon1}, {"lat2", lat2}, {"lon2", lon2},
	} {
		f, err := parseParam(p.name, p.v)
		if err != nil {
			return domain.BoundingBox{}, err
		}
		vals[i] = f
	}
	return domain.NewBoundingBox(
		domain.Coord{Lat: vals[0], Lon: vals[1]},
		domain.Coord{Lat: vals[2], Lon: vals[3]},
	), nil
}

func parseParam(name, v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidArgument, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", domain.ErrInvalidArgument, name, v)
	}
	return f, nil
}
