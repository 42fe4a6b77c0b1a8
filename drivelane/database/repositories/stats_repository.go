package repositories

import (
	"context"
	"time"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/uptrace/bun"
)

type StatsRepository interface {
	SaveSnapshots(ctx context.Context, snapshots []*models.MarketSnapshot) error
	GetLatestSnapshots(ctx context.Context) ([]*models.MarketSnapshot, error)
	GetSnapshotHistory(ctx context.Context, category string, since time.Time) ([]*models.MarketSnapshot, error)
	GetSalesSince(ctx context.Context, category string, since time.Time) ([]*models.SaleRecord, error)
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
}

type statsRepository struct {
	db   *bun.DB
	base *BaseRepository
}

func NewStatsRepository(db *bun.DB) StatsRepository {
	return &statsRepository{
		db:   db,
		base: NewBaseRepository(db),
	}
}

func (r *statsRepository) SaveSnapshots(ctx context.Context, snapshots []*models.MarketSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.base.BatchInsert(ctx, "market_snapshot", &snapshots)
}

// GetLatestSnapshots returns the most recent snapshot for each category.
func (r *statsRepository) GetLatestSnapshots(ctx context.Context) ([]*models.MarketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var snapshots []*models.MarketSnapshot
	err := r.db.NewSelect().
		Model(&snapshots).
		DistinctOn("category").
		Order("category").
		Order("timestamp DESC").
		Scan(ctx)

	return snapshots, r.base.HandleError("latest", "market_snapshot", err)
}

func (r *statsRepository) GetSnapshotHistory(ctx context.Context, category string, since time.Time) ([]*models.MarketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var snapshots []*models.MarketSnapshot
	err := r.db.NewSelect().
		Model(&snapshots).
		Where("category = ?", category).
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Scan(ctx)

	return snapshots, r.base.HandleError("history", "market_snapshot", err)
}

func (r *statsRepository) GetSalesSince(ctx context.Context, category string, since time.Time) ([]*models.SaleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var records []*models.SaleRecord
	query := r.db.NewSelect().
		Model(&records).
		Where("sold_at >= ?", since)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("sold_at ASC").Scan(ctx)

	return records, r.base.HandleError("sales_since", "sale_record", err)
}

func (r *statsRepository) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.MarketSnapshot)(nil)).
		Where("timestamp < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, r.base.HandleError("prune", "market_snapshot", err)
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
