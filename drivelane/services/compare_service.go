package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
)

// ErrSameListing is returned when both sides of a comparison are the
// same listing ref.
var ErrSameListing = errors.New("cannot compare a listing against itself")

// CompareService resolves listing refs and runs the scoring engine,
// memoizing results per ordered pair.
type CompareService struct {
	listings repositories.ListingRepository
	cache    *ComparisonCache
}

func NewCompareService(listings repositories.ListingRepository, cache *ComparisonCache) *CompareService {
	return &CompareService{
		listings: listings,
		cache:    cache,
	}
}

// Compare scores two listings against each other.
func (s *CompareService) Compare(ctx context.Context, firstRef, secondRef string) (*comparison.Summary, error) {
	if firstRef == secondRef {
		return nil, ErrSameListing
	}

	if summary, ok := s.cache.Get(ctx, firstRef, secondRef); ok {
		return summary, nil
	}

	start := time.Now()

	first, err := s.listings.GetByRef(ctx, firstRef)
	if err != nil {
		return nil, err
	}
	second, err := s.listings.GetByRef(ctx, secondRef)
	if err != nil {
		return nil, err
	}

	summary := comparison.Compare(first.Vehicle(), second.Vehicle())
	s.cache.Set(ctx, firstRef, secondRef, &summary)

	slog.Debug("Comparison computed",
		slog.String("type", "sys"),
		slog.String("first", firstRef),
		slog.String("second", secondRef),
		slog.Duration("took", time.Since(start)),
	)
	return &summary, nil
}

// OwnershipCost returns the five-year cost breakdown for one listing.
func (s *CompareService) OwnershipCost(ctx context.Context, ref string) (*comparison.CostBreakdown, error) {
	listing, err := s.listings.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	breakdown := comparison.OwnershipCost(listing.Vehicle())
	return &breakdown, nil
}
