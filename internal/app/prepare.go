package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"airport_lookup/internal/domain"
)

// Source column names. latitude_deg/longitude_deg are renamed on the way in.
const (
	colName      = "name"
	colLatitude  = "latitude_deg"
	colLongitude = "longitude_deg"
	colIATA      = "iata_code"
)

var requiredColumns = []string{colName, colLatitude, colLongitude, colIATA}

// Prepare projects raw rows down to name/latitude/longitude/iata_code and
// drops rows without an IATA code. A missing column is a schema error.
func Prepare(raw domain.RawTable) (domain.Table, error) {
	idx := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		c = strings.TrimSpace(c)
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return domain.Table{}, fmt.Errorf("%w: missing column(s) %s", domain.ErrSchema, strings.Join(missing, ", "))
	}

	out := make([]domain.Airport, 0, len(raw.Rows))
	for n, row := range raw.Rows {
		iata := strings.TrimSpace(cell(row, idx[colIATA]))
		if iata == "" {
			continue
		}
		lat, err := parseCoord(cell(row, idx[colLatitude]))
		if err != nil {
			return domain.Table{}, fmt.Errorf("%w: row %d: %s: %v", domain.ErrSchema, n+1, colLatitude, err)
		}
		lon, err := parseCoord(cell(row, idx[colLongitude]))
		if err != nil {
			return domain.Table{}, fmt.Errorf("%w: row %d: %s: %v", domain.ErrSchema, n+1, colLongitude, err)
		}
		out = append(out, domain.Airport{
			Name:      cell(row, idx[colName]),
			Latitude:  lat,
			Longitude: lon,
			IATACode:  iata,
		})
	}
	return domain.NewTable(out), nil
}

// cell tolerates short rows; an absent cell reads as empty.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseCoord(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}
