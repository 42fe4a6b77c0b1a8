package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/uptrace/bun"
)

const (
	maxBatchSize = 1000
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id int64) (*models.Listing, error)
	GetByRef(ctx context.Context, ref string) (*models.Listing, error)
	GetByRefs(ctx context.Context, refs []string) ([]*models.Listing, error)
	GetActiveByDealer(ctx context.Context, dealerID int64, offset, limit int) ([]*models.Listing, int, error)
	GetAllActive(ctx context.Context) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	UpdateStatus(ctx context.Context, ref string, status models.ListingStatus) error
	Delete(ctx context.Context, ref string) error
	BulkCreate(ctx context.Context, listings []*models.Listing) (int, error)
	Search(ctx context.Context, filters ListingFilters, offset, limit int) ([]*models.Listing, int, error)
	SearchTitles(ctx context.Context, query string, limit int) ([]*models.Listing, error)
	MarkSold(ctx context.Context, ref string, soldAt time.Time) error
	CountByStatus(ctx context.Context, status models.ListingStatus) (int, error)
}

type listingRepository struct {
	db    *bun.DB
	base  *BaseRepository
	cache *sync.Map
}

func NewListingRepository(db *bun.DB) ListingRepository {
	return &listingRepository{
		db:    db,
		base:  NewBaseRepository(db),
		cache: &sync.Map{},
	}
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

func (r *listingRepository) getFromCache(key string) (interface{}, bool) {
	value, ok := r.cache.Load(key)
	if !ok {
		return nil, false
	}

	entry := value.(cacheEntry)
	if time.Now().After(entry.expiresAt) {
		r.cache.Delete(key)
		return nil, false
	}

	return entry.data, true
}

func (r *listingRepository) setCache(key string, value interface{}, duration time.Duration) {
	r.cache.Store(key, cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(duration),
	})
}

func (r *listingRepository) invalidateCache(ref string) {
	r.cache.Delete("ref:" + ref)
	// Search results may contain the listing under any key, drop them all.
	r.cache.Range(func(key, _ interface{}) bool {
		if k, ok := key.(string); ok && len(k) > 7 && k[:7] == "search:" {
			r.cache.Delete(key)
		}
		return true
	})
}

func generateSearchCacheKey(filters ListingFilters, offset, limit int) string {
	return fmt.Sprintf("search:q=%s:make=%s:model=%s:cat=%s:fuel=%s:dt=%s:cond=%s:city=%s:region=%s:dealer=%d:pmin=%.0f:pmax=%.0f:ymin=%d:ymax=%d:mmax=%d:feat=%v:status=%s:sort=%s:desc=%v:offset=%d:limit=%d",
		filters.Query, filters.Make, filters.Model, filters.Category, filters.FuelType,
		filters.Drivetrain, filters.Condition, filters.City, filters.Region, filters.DealerID,
		filters.PriceMin, filters.PriceMax, filters.YearMin, filters.YearMax, filters.MileageMax,
		filters.Features, filters.Status, filters.SortBy, filters.SortDesc, offset, limit,
	)
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(listing).
		Returning("id").
		Exec(ctx)

	return r.base.HandleError("create", "listing", err)
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "listing", id, err)
	}

	return listing, nil
}

func (r *listingRepository) GetByRef(ctx context.Context, ref string) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	cacheKey := "ref:" + ref
	if cached, ok := r.getFromCache(cacheKey); ok {
		return cached.(*models.Listing), nil
	}

	listing := new(models.Listing)
	err := r.db.NewSelect().
		Model(listing).
		Where("ref = ?", ref).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "listing", ref, err)
	}

	r.setCache(cacheKey, listing, config.CacheExpiration)
	return listing, nil
}

func (r *listingRepository) GetByRefs(ctx context.Context, refs []string) ([]*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	if len(refs) == 0 {
		return nil, nil
	}

	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("ref IN (?)", bun.In(refs)).
		Scan(ctx)

	return listings, r.base.HandleError("get_by_refs", "listing", err)
}

func (r *listingRepository) GetActiveByDealer(ctx context.Context, dealerID int64, offset, limit int) ([]*models.Listing, int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Listing)(nil)).
		Where("dealer_id = ?", dealerID).
		Where("status = ?", models.ListingStatusActive).
		Count(ctx)
	if err != nil {
		return nil, 0, r.base.HandleError("count", "listing", err)
	}

	var listings []*models.Listing
	err = r.db.NewSelect().
		Model(&listings).
		Where("dealer_id = ?", dealerID).
		Where("status = ?", models.ListingStatusActive).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, 0, r.base.HandleError("get_by_dealer", "listing", err)
	}

	return listings, count, nil
}

func (r *listingRepository) GetAllActive(ctx context.Context) ([]*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Where("status = ?", models.ListingStatusActive).
		Order("id ASC").
		Scan(ctx)

	return listings, r.base.HandleError("get_all_active", "listing", err)
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	listing.UpdatedAt = time.Now()

	_, err := r.db.NewUpdate().
		Model(listing).
		WherePK().
		Exec(ctx)

	if err == nil {
		r.invalidateCache(listing.Ref)
	}

	return r.base.HandleError("update", "listing", err)
}

func (r *listingRepository) UpdateStatus(ctx context.Context, ref string, status models.ListingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Listing)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("ref = ?", ref).
		Exec(ctx)
	if err != nil {
		return r.base.HandleErrorWithID("update_status", "listing", ref, err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &NotFoundError{Entity: "listing", ID: ref}
	}

	r.invalidateCache(ref)
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Listing)(nil)).
		Where("ref = ?", ref).
		Exec(ctx)
	if err != nil {
		return r.base.HandleErrorWithID("delete", "listing", ref, err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &NotFoundError{Entity: "listing", ID: ref}
	}

	r.invalidateCache(ref)
	return nil
}

func (r *listingRepository) BulkCreate(ctx context.Context, listings []*models.Listing) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.BatchQueryTimeout)
	defer cancel()

	if len(listings) == 0 {
		return 0, nil
	}

	now := time.Now()
	totalCreated := 0

	// Process in batches to avoid overwhelming the database
	for i := 0; i < len(listings); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(listings) {
			end = len(listings)
		}
		batch := listings[i:end]

		for _, listing := range batch {
			listing.CreatedAt = now
			listing.UpdatedAt = now
		}

		res, err := r.db.NewInsert().
			Model(&batch).
			On("CONFLICT (ref) DO UPDATE").
			Set("price = EXCLUDED.price").
			Set("mileage = EXCLUDED.mileage").
			Set("features = EXCLUDED.features").
			Set("photo_keys = EXCLUDED.photo_keys").
			Set("status = EXCLUDED.status").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return totalCreated, r.base.HandleError("bulk_create", "listing", err)
		}

		affected, _ := res.RowsAffected()
		totalCreated += int(affected)
	}

	return totalCreated, nil
}

func (r *listingRepository) Search(ctx context.Context, filters ListingFilters, offset, limit int) ([]*models.Listing, int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	cacheKey := generateSearchCacheKey(filters, offset, limit)
	if cached, ok := r.getFromCache(cacheKey); ok {
		result := cached.(searchResult)
		return result.listings, result.count, nil
	}

	countQuery := filters.Apply(r.db.NewSelect().Model((*models.Listing)(nil)))
	count, err := countQuery.Count(ctx)
	if err != nil {
		return nil, 0, r.base.HandleError("search_count", "listing", err)
	}

	var listings []*models.Listing
	query := filters.Apply(r.db.NewSelect().Model(&listings)).
		OrderExpr(filters.SortClause()).
		Offset(offset).
		Limit(limit)

	if err := query.Scan(ctx); err != nil {
		return nil, 0, r.base.HandleError("search", "listing", err)
	}

	r.setCache(cacheKey, searchResult{listings: listings, count: count}, config.CacheExpiration)
	return listings, count, nil
}

type searchResult struct {
	listings []*models.Listing
	count    int
}

// SearchTitles returns candidate listings for suggestion matching.
func (r *listingRepository) SearchTitles(ctx context.Context, query string, limit int) ([]*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	if limit <= 0 {
		limit = config.SuggestionLimit
	}

	var listings []*models.Listing
	err := r.db.NewSelect().
		Model(&listings).
		Column("id", "ref", "make", "model", "title", "year", "price").
		Where("status = ?", models.ListingStatusActive).
		Where("(LOWER(make) LIKE LOWER(?) OR LOWER(model) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?))",
			"%"+query+"%", "%"+query+"%", "%"+query+"%").
		OrderExpr("LENGTH(title)").Order("title").
		Limit(limit * 4).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleError("search_titles", "listing", err)
	}

	return listings, nil
}

// MarkSold flips the listing to sold and records the sale in one transaction.
func (r *listingRepository) MarkSold(ctx context.Context, ref string, soldAt time.Time) error {
	err := r.base.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		listing := new(models.Listing)
		if err := tx.NewSelect().
			Model(listing).
			Where("ref = ?", ref).
			For("UPDATE").
			Scan(txCtx); err != nil {
			return err
		}

		if listing.Status == models.ListingStatusSold {
			return &ConflictError{Entity: "listing", Field: "status", Value: models.ListingStatusSold}
		}

		if _, err := tx.NewUpdate().
			Model((*models.Listing)(nil)).
			Set("status = ?", models.ListingStatusSold).
			Set("updated_at = ?", time.Now()).
			Where("ref = ?", ref).
			Exec(txCtx); err != nil {
			return err
		}

		record := &models.SaleRecord{
			ListingRef: listing.Ref,
			DealerID:   listing.DealerID,
			Category:   listing.Category,
			Price:      listing.Price,
			ListedAt:   listing.CreatedAt,
			SoldAt:     soldAt,
		}
		_, err := tx.NewInsert().Model(record).Exec(txCtx)
		return err
	})
	if err != nil {
		if IsConflict(err) || IsNotFound(err) {
			return err
		}
		return r.base.HandleErrorWithID("mark_sold", "listing", ref, err)
	}

	r.invalidateCache(ref)
	return nil
}

func (r *listingRepository) CountByStatus(ctx context.Context, status models.ListingStatus) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Listing)(nil)).
		Where("status = ?", status).
		Count(ctx)

	return count, r.base.HandleError("count_by_status", "listing", err)
}
