package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"airport_lookup/internal/domain"
)

type QueryService struct {
	table    domain.Table
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewQueryService serves queries against t. c may be nil to disable caching.
func NewQueryService(t domain.Table, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{table: t, cache: c, cacheTTL: ttl}
}

func (s *QueryService) All(ctx context.Context) ([]domain.Airport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.table.Records(), nil
}

func (s *QueryService) Within(ctx context.Context, box domain.BoundingBox) ([]domain.Airport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := withinKey(s.table.Version(), box)

	if s.cache != nil {
		var cached []domain.Airport
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			if cached == nil {
				cached = []domain.Airport{}
			}
			return cached, nil
		}
	}

	// identical concurrent misses share one scan and one cache write
	v, _, _ := s.group.Do(key, func() (any, error) {
		res := Within(s.table, box.LowerLeft(), box.UpperRight())
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, res, int(s.cacheTTL.Seconds())); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
		return res, nil
	})
	return v.([]domain.Airport), nil
}

func withinKey(version string, b domain.BoundingBox) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	return fmt.Sprintf("within:%s:%s:%s:%s:%s", version, f(b.LatMin), f(b.LonMin), f(b.LatMax), f(b.LonMax))
}
