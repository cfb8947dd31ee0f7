package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"book_my_hotel/internal/adapters/observability"
	"book_my_hotel/internal/domain"
)

// CatalogSeeder loads hotels from a CatalogSource into the repository.
type CatalogSeeder struct {
	source domain.CatalogSource
	repo   domain.HotelRepository
	cache  domain.Cache
}

func NewCatalogSeeder(src domain.CatalogSource, r domain.HotelRepository, cache domain.Cache) *CatalogSeeder {
	return &CatalogSeeder{source: src, repo: r, cache: cache}
}

func (s *CatalogSeeder) Fetch(ctx context.Context) ([]map[string]any, error) {
	raw, err := s.source.FetchHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return raw, nil
}

// SeedHotel maps, validates and upserts one raw hotel together with its
// reviews. Invalid hotel payloads return an ErrValidation-wrapped error and
// are not written; an invalid review is skipped on its own.
func (s *CatalogSeeder) SeedHotel(ctx context.Context, raw map[string]any) (int64, error) {
	h := mapHotel(raw)
	if h.ID <= 0 {
		observability.ObserveSeed("invalid")
		return 0, fmt.Errorf("%w: hotel payload without id", domain.ErrValidation)
	}
	if err := h.Validate(); err != nil {
		observability.ObserveSeed("invalid")
		return h.ID, err
	}
	reviews := make([]domain.Review, 0)
	for _, r := range mapReviews(h.ID, raw) {
		if err := r.Validate(); err != nil {
			log.Warn().Int64("id", h.ID).Err(err).Msg("seed skipped invalid review")
			continue
		}
		reviews = append(reviews, r)
	}

	// parent first: reviews reference the hotel
	if err := s.repo.UpsertHotel(ctx, h); err != nil {
		observability.ObserveSeed("error")
		return h.ID, fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}
	if err := s.repo.ReplaceReviews(ctx, h.ID, reviews); err != nil {
		observability.ObserveSeed("error")
		return h.ID, fmt.Errorf("replace reviews of %d: %w", h.ID, err)
	}
	// drop any stale snapshot of this hotel
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(h.ID))
		_ = s.cache.Del(ctx, reviewsKey(h.ID))
	}
	observability.ObserveSeed("ok")
	return h.ID, nil
}

// SeedOne re-fetches a single hotel from the source and seeds it.
func (s *CatalogSeeder) SeedOne(ctx context.Context, id int64) error {
	raw, err := s.source.FetchHotel(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch hotel %d: %w", id, err)
	}
	if _, err := s.SeedHotel(ctx, raw); err != nil {
		return err
	}
	s.InvalidateCatalog(ctx)
	return nil
}

// InvalidateCatalog drops the cached catalog so searches see the new data.
func (s *CatalogSeeder) InvalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, catalogKey)
	}
}

// IsInvalid reports whether a SeedHotel error came from a bad payload
// rather than from storage.
func IsInvalid(err error) bool { return errors.Is(err, domain.ErrValidation) }

// SeedReport counts the outcome of one seeding run.
type SeedReport struct {
	OK      int
	Invalid int
	Failed  int
}

// Run fetches the catalog once and seeds every hotel with at most workers
// upserts in flight. Per-hotel failures are logged and counted; only a
// failed fetch or a cancelled context aborts the run.
func (s *CatalogSeeder) Run(ctx context.Context, workers int) (SeedReport, error) {
	var rep SeedReport
	raws, err := s.Fetch(ctx)
	if err != nil {
		return rep, err
	}
	// hotels upserted before a cancellation must become visible too
	defer s.InvalidateCatalog(context.WithoutCancel(ctx))

	if workers < 1 {
		workers = 1
	}

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, raw := range raws {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}
		wg.Add(1)
		go func(raw map[string]any) {
			defer wg.Done()
			defer sem.Release(1)

			id, err := s.SeedHotel(ctx, raw)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				rep.OK++
				log.Debug().Int64("id", id).Msg("seed ok")
			case IsInvalid(err):
				rep.Invalid++
				log.Warn().Int64("id", id).Err(err).Msg("seed skipped invalid hotel")
			default:
				rep.Failed++
				log.Warn().Int64("id", id).Err(err).Msg("seed failed")
			}
		}(raw)
	}
	wg.Wait()
	return rep, nil
}
