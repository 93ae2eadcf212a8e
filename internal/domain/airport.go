package domain

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"
)

type Airport struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IATACode  string  `json:"iata_code"`
}

// Table is the prepared, read-only set of airports. It is safe for
// concurrent readers because nothing mutates it after NewTable.
type Table struct {
	records []Airport
	version string
}

// NewTable takes ownership of records.
func NewTable(records []Airport) Table {
	return Table{records: records, version: checksum(records)}
}

func (t Table) Len() int { return len(t.records) }

func (t Table) At(i int) Airport { return t.records[i] }

// Records returns a copy of the table contents in source order.
func (t Table) Records() []Airport {
	if t.records == nil {
		return []Airport{}
	}
	return slices.Clone(t.records)
}

// Version identifies the table contents; equal inputs give equal versions.
func (t Table) Version() string { return t.version }

func checksum(records []Airport) string {
	h := sha1.New()
	var buf [8]byte
	for _, a := range records {
		h.Write([]byte(a.Name))
		h.Write([]byte{0})
		h.Write([]byte(a.IATACode))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(a.Latitude))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(a.Longitude))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

type Coord struct{ Lat, Lon float64 }

// BoundingBox is a closed lat/lon rectangle. Corners are kept as given.
type BoundingBox struct {
	LatMin, LonMin float64
	LatMax, LonMax float64
}

func NewBoundingBox(lowerLeft, upperRight Coord) BoundingBox {
	return BoundingBox{
		LatMin: lowerLeft.Lat, LonMin: lowerLeft.Lon,
		LatMax: upperRight.Lat, LonMax: upperRight.Lon,
	}
}

func (b BoundingBox) LowerLeft() Coord  { return Coord{Lat: b.LatMin, Lon: b.LonMin} }
func (b BoundingBox) UpperRight() Coord { return Coord{Lat: b.LatMax, Lon: b.LonMax} }

// Contains reports whether c lies inside the closed rectangle.
func (b BoundingBox) Contains(c Coord) bool {
	return b.LatMin <= c.Lat && c.Lat <= b.LatMax &&
		b.LonMin <= c.Lon && c.Lon <= b.LonMax
}

// RawTable is a header plus rows as read from the upstream source.
type RawTable struct {
	Columns []string
	Rows    [][]string
}
