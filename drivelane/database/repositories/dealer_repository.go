package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/uptrace/bun"
)

type DealerRepository interface {
	Create(ctx context.Context, dealer *models.Dealer) error
	GetByID(ctx context.Context, id int64) (*models.Dealer, error)
	GetBySlug(ctx context.Context, slug string) (*models.Dealer, error)
	GetAll(ctx context.Context) ([]*models.Dealer, error)
	Update(ctx context.Context, dealer *models.Dealer) error
	GetStats(ctx context.Context, dealerID int64, soldWindow time.Duration) (*models.DealerStats, error)
}

type dealerRepository struct {
	db    *bun.DB
	base  *BaseRepository
	cache *sync.Map
}

func NewDealerRepository(db *bun.DB) DealerRepository {
	return &dealerRepository{
		db:    db,
		base:  NewBaseRepository(db),
		cache: &sync.Map{},
	}
}

func (r *dealerRepository) Create(ctx context.Context, dealer *models.Dealer) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.Dealer)(nil)).
		Where("slug = ?", dealer.Slug).
		Exists(ctx)
	if err != nil {
		return r.base.HandleError("create", "dealer", err)
	}
	if exists {
		return &ConflictError{Entity: "dealer", Field: "slug", Value: dealer.Slug}
	}

	dealer.CreatedAt = time.Now()
	dealer.UpdatedAt = time.Now()

	_, err = r.db.NewInsert().
		Model(dealer).
		Returning("id").
		Exec(ctx)

	return r.base.HandleError("create", "dealer", err)
}

func (r *dealerRepository) GetByID(ctx context.Context, id int64) (*models.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	dealer := new(models.Dealer)
	err := r.db.NewSelect().
		Model(dealer).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "dealer", id, err)
	}

	return dealer, nil
}

func (r *dealerRepository) GetBySlug(ctx context.Context, slug string) (*models.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	cacheKey := "slug:" + slug
	if cached, ok := r.cache.Load(cacheKey); ok {
		entry := cached.(cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.data.(*models.Dealer), nil
		}
		r.cache.Delete(cacheKey)
	}

	dealer := new(models.Dealer)
	err := r.db.NewSelect().
		Model(dealer).
		Where("slug = ?", slug).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "dealer", slug, err)
	}

	r.cache.Store(cacheKey, cacheEntry{data: dealer, expiresAt: time.Now().Add(config.CacheExpiration)})
	return dealer, nil
}

func (r *dealerRepository) GetAll(ctx context.Context) ([]*models.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var dealers []*models.Dealer
	err := r.db.NewSelect().
		Model(&dealers).
		Order("name ASC").
		Scan(ctx)

	return dealers, r.base.HandleError("get_all", "dealer", err)
}

func (r *dealerRepository) Update(ctx context.Context, dealer *models.Dealer) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	dealer.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(dealer).
		WherePK().
		Exec(ctx)

	if err == nil {
		r.cache.Delete("slug:" + dealer.Slug)
	}

	return r.base.HandleError("update", "dealer", err)
}

// GetStats aggregates live inventory and recent sale figures for a dealer.
func (r *dealerRepository) GetStats(ctx context.Context, dealerID int64, soldWindow time.Duration) (*models.DealerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	stats := new(models.DealerStats)

	err := r.db.NewSelect().
		Model((*models.Listing)(nil)).
		ColumnExpr("COUNT(*) AS active_listings").
		ColumnExpr("COALESCE(AVG(price), 0) AS avg_price").
		Where("dealer_id = ?", dealerID).
		Where("status = ?", models.ListingStatusActive).
		Scan(ctx, &stats.ActiveListings, &stats.AvgPrice)
	if err != nil {
		return nil, r.base.HandleError("stats", "dealer", err)
	}

	since := time.Now().Add(-soldWindow)
	err = r.db.NewSelect().
		Model((*models.SaleRecord)(nil)).
		ColumnExpr("COUNT(*) AS sold").
		ColumnExpr("COALESCE(AVG(EXTRACT(EPOCH FROM (sold_at - listed_at)) / 86400.0), 0) AS avg_days").
		Where("dealer_id = ?", dealerID).
		Where("sold_at >= ?", since).
		Scan(ctx, &stats.SoldLast30d, &stats.AvgDaysToSale)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, r.base.HandleError("stats", "dealer", err)
	}

	return stats, nil
}
