package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var trackedCategories = []comparison.Category{
	comparison.CategorySedan,
	comparison.CategorySUV,
	comparison.CategoryCoupe,
	comparison.CategoryHatchback,
	comparison.CategoryTruck,
	comparison.CategoryMinivan,
}

// Monitor periodically recomputes per-category market statistics and
// persists them as snapshots.
type Monitor struct {
	listings   repositories.ListingRepository
	stats      repositories.StatsRepository
	interval   time.Duration
	soldWindow time.Duration
}

func NewMonitor(listings repositories.ListingRepository, stats repositories.StatsRepository, interval, soldWindow time.Duration) *Monitor {
	if interval <= 0 {
		interval = config.SnapshotInterval
	}
	if soldWindow <= 0 {
		soldWindow = config.DefaultSoldWindow
	}
	return &Monitor{
		listings:   listings,
		stats:      stats,
		interval:   interval,
		soldWindow: soldWindow,
	}
}

// Run computes snapshots on the configured interval until the context
// is cancelled. The first pass runs immediately.
func (m *Monitor) Run(ctx context.Context) {
	if err := m.SnapshotNow(ctx); err != nil {
		slog.Error("Initial market snapshot failed",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.SnapshotNow(ctx); err != nil {
				slog.Error("Market snapshot failed",
					slog.String("type", "sys"),
					slog.Any("error", err),
				)
			}
		}
	}
}

// SnapshotNow recomputes statistics for every category and persists
// the resulting snapshots in one batch.
func (m *Monitor) SnapshotNow(ctx context.Context) error {
	start := time.Now()

	active, err := m.listings.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active listings: %w", err)
	}

	pricesByCategory := make(map[comparison.Category][]float64, len(trackedCategories))
	for _, listing := range active {
		cat := comparison.Category(listing.Category)
		pricesByCategory[cat] = append(pricesByCategory[cat], listing.Price)
	}

	since := start.Add(-m.soldWindow)

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(config.MaxConcurrentBatches))
	results := make(chan *models.MarketSnapshot, len(trackedCategories))

	for _, category := range trackedCategories {
		category := category
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			queryCtx, cancel := context.WithTimeout(gctx, config.StatsQueryTimeout)
			defer cancel()

			sales, err := m.stats.GetSalesSince(queryCtx, string(category), since)
			if err != nil {
				return fmt.Errorf("failed to load sales for %s: %w", category, err)
			}

			snapshot := buildSnapshot(start, category, pricesByCategory[category], sales)

			select {
			case results <- snapshot:
			case <-gctx.Done():
				return gctx.Err()
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	snapshots := make([]*models.MarketSnapshot, 0, len(trackedCategories))
	for snapshot := range results {
		snapshots = append(snapshots, snapshot)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := m.stats.SaveSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("failed to save snapshots: %w", err)
	}

	slog.Info("Market snapshot complete",
		slog.String("type", "sys"),
		slog.Int("categories", len(snapshots)),
		slog.Int("active_listings", len(active)),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// Overview returns the latest stored snapshot per category.
func (m *Monitor) Overview(ctx context.Context) ([]*models.MarketSnapshot, error) {
	return m.stats.GetLatestSnapshots(ctx)
}

// History returns snapshots for one category since the given time.
func (m *Monitor) History(ctx context.Context, category string, since time.Time) ([]*models.MarketSnapshot, error) {
	return m.stats.GetSnapshotHistory(ctx, category, since)
}

func buildSnapshot(at time.Time, category comparison.Category, prices []float64, sales []*models.SaleRecord) *models.MarketSnapshot {
	snapshot := &models.MarketSnapshot{
		Timestamp:      at,
		Category:       string(category),
		ActiveListings: len(prices),
		SalesVolume:    len(sales),
	}

	if len(prices) > 0 {
		snapshot.MinPrice, snapshot.MaxPrice = MinMax(prices)
		snapshot.AvgPrice = Mean(prices)
		// Medians on tiny samples are noise, require a floor.
		if len(prices) >= config.MinListingsForMedians {
			snapshot.MedianPrice = Median(prices)
			snapshot.PriceDispersion = Dispersion(prices)
		}
	}

	if len(sales) > 0 {
		days := make([]float64, 0, len(sales))
		for _, sale := range sales {
			days = append(days, sale.DaysToSale())
		}
		snapshot.AvgDaysToSale = Mean(days)
	}

	return snapshot
}
