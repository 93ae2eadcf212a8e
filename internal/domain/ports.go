package domain

import (
	"context"
	"errors"
)

var (
	ErrSchema          = errors.New("schema error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

type SourceClient interface {
	Fetch(ctx context.Context) (RawTable, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

// Info is the static dataset description served on /ws/info/.
type Info struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Type        string     `json:"type"`
	Center      InfoCenter `json:"center"`
	Zoom        int        `json:"zoom"`
	MaxZoom     int        `json:"maxZoom"`
	Visible     bool       `json:"visible"`
	Scope       string     `json:"scope"`
}

type InfoCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
