package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"airport_lookup/internal/adapters/observability"
	"airport_lookup/internal/domain"
)

type LoadService struct {
	src domain.SourceClient
}

func NewLoadService(src domain.SourceClient) *LoadService {
	return &LoadService{src: src}
}

// Load fetches the raw source once and prepares the serving table.
func (s *LoadService) Load(ctx context.Context) (domain.Table, error) {
	start := time.Now()

	raw, err := s.src.Fetch(ctx)
	if err != nil {
		return domain.Table{}, fmt.Errorf("fetch airports: %w", err)
	}

	t, err := Prepare(raw)
	if err != nil {
		return domain.Table{}, fmt.Errorf("prepare airports: %w", err)
	}

	dur := time.Since(start)
	observability.ObserveLoad(t.Len(), dur)
	log.Info().
		Int("raw_rows", len(raw.Rows)).
		Int("kept", t.Len()).
		Int("dropped", len(raw.Rows)-t.Len()).
		Str("version", t.Version()).
		Dur("duration", dur).
		Msg("airport table loaded")
	return t, nil
}
