package repositories

import (
	"context"
	"time"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/uptrace/bun"
)

const maxSavedComparisonsPerUser = 50

type ComparisonRepository interface {
	Save(ctx context.Context, comparison *models.SavedComparison) error
	GetByRef(ctx context.Context, ref string) (*models.SavedComparison, error)
	GetByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.SavedComparison, int, error)
	Delete(ctx context.Context, userID int64, ref string) error
}

type comparisonRepository struct {
	db   *bun.DB
	base *BaseRepository
}

func NewComparisonRepository(db *bun.DB) ComparisonRepository {
	return &comparisonRepository{
		db:   db,
		base: NewBaseRepository(db),
	}
}

// Save stores a comparison; users over the cap lose their oldest entry.
func (r *comparisonRepository) Save(ctx context.Context, comparison *models.SavedComparison) error {
	return r.base.Transaction(ctx, func(txCtx context.Context, tx bun.Tx) error {
		comparison.CreatedAt = time.Now()

		if _, err := tx.NewInsert().
			Model(comparison).
			Returning("id").
			Exec(txCtx); err != nil {
			return err
		}

		count, err := tx.NewSelect().
			Model((*models.SavedComparison)(nil)).
			Where("user_id = ?", comparison.UserID).
			Count(txCtx)
		if err != nil {
			return err
		}
		if count <= maxSavedComparisonsPerUser {
			return nil
		}

		_, err = tx.NewDelete().
			Model((*models.SavedComparison)(nil)).
			Where("user_id = ?", comparison.UserID).
			Where("id IN (SELECT id FROM saved_comparisons WHERE user_id = ? ORDER BY created_at ASC LIMIT ?)",
				comparison.UserID, count-maxSavedComparisonsPerUser).
			Exec(txCtx)
		return err
	})
}

func (r *comparisonRepository) GetByRef(ctx context.Context, ref string) (*models.SavedComparison, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	comparison := new(models.SavedComparison)
	err := r.db.NewSelect().
		Model(comparison).
		Where("ref = ?", ref).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "saved_comparison", ref, err)
	}

	return comparison, nil
}

func (r *comparisonRepository) GetByUser(ctx context.Context, userID int64, offset, limit int) ([]*models.SavedComparison, int, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.SavedComparison)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, 0, r.base.HandleError("count", "saved_comparison", err)
	}

	var comparisons []*models.SavedComparison
	err = r.db.NewSelect().
		Model(&comparisons).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, 0, r.base.HandleError("get_by_user", "saved_comparison", err)
	}

	return comparisons, count, nil
}

func (r *comparisonRepository) Delete(ctx context.Context, userID int64, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.SavedComparison)(nil)).
		Where("user_id = ?", userID).
		Where("ref = ?", ref).
		Exec(ctx)
	if err != nil {
		return r.base.HandleErrorWithID("delete", "saved_comparison", ref, err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &NotFoundError{Entity: "saved_comparison", ID: ref}
	}

	return nil
}
