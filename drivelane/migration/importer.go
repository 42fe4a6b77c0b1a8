package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Importer copies dealers and listings out of the old mongo backend
// into postgres. Dealers come first so listings can resolve their
// dealer id by slug.
type Importer struct {
	mongoDB   *mongo.Database
	pgDB      *bun.DB
	dealers   repositories.DealerRepository
	listings  repositories.ListingRepository
	batchSize int
	stats     ImportStats
}

func NewImporter(mongoURI, mongoName string, pgDB *bun.DB, dealers repositories.DealerRepository, listings repositories.ListingRepository) (*Importer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo unreachable: %w", err)
	}

	return &Importer{
		mongoDB:   client.Database(mongoName),
		pgDB:      pgDB,
		dealers:   dealers,
		listings:  listings,
		batchSize: 1000,
		stats: ImportStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}, nil
}

// SetBatchSize overrides the default listing insert batch size.
func (im *Importer) SetBatchSize(size int) {
	if size > 0 {
		im.batchSize = size
	}
}

// Stats returns the progress counters collected so far.
func (im *Importer) Stats() ImportStats {
	return im.stats
}

// Run imports dealers, then listings, then closes out sale records for
// listings the old system already marked sold.
func (im *Importer) Run(ctx context.Context) error {
	dealerIDs, err := im.importDealers(ctx)
	if err != nil {
		return fmt.Errorf("dealer import failed: %w", err)
	}

	if err := im.importListings(ctx, dealerIDs); err != nil {
		return fmt.Errorf("listing import failed: %w", err)
	}

	im.stats.EndTime = time.Now()
	slog.Info("Legacy import complete",
		slog.String("type", "sys"),
		slog.Duration("took", im.stats.EndTime.Sub(im.stats.StartTime)),
	)
	return nil
}

func (im *Importer) importDealers(ctx context.Context) (map[string]int64, error) {
	stats := &TableStats{StartTime: time.Now()}
	im.stats.Tables["dealers"] = stats

	cur, err := im.mongoDB.Collection("dealers").Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	dealerIDs := make(map[string]int64)
	for cur.Next(ctx) {
		var legacy LegacyDealer
		if err := cur.Decode(&legacy); err != nil {
			stats.FailedRecords++
			continue
		}
		stats.TotalRecords++

		dealer := convertDealer(legacy)
		if err := im.dealers.Create(ctx, dealer); err != nil {
			if repositories.IsConflict(err) {
				existing, lookupErr := im.dealers.GetBySlug(ctx, dealer.Slug)
				if lookupErr == nil {
					dealerIDs[dealer.Slug] = existing.ID
					continue
				}
			}
			stats.FailedRecords++
			slog.Warn("Skipping dealer",
				slog.String("type", "sys"),
				slog.String("slug", dealer.Slug),
				slog.Any("error", err),
			)
			continue
		}

		dealerIDs[dealer.Slug] = dealer.ID
		stats.MigratedRecords++
	}

	stats.EndTime = time.Now()
	slog.Info("Dealers imported",
		slog.String("type", "sys"),
		slog.Int64("migrated", stats.MigratedRecords),
		slog.Int64("failed", stats.FailedRecords),
	)
	return dealerIDs, cur.Err()
}

func (im *Importer) importListings(ctx context.Context, dealerIDs map[string]int64) error {
	stats := &TableStats{StartTime: time.Now()}
	im.stats.Tables["listings"] = stats

	cur, err := im.mongoDB.Collection("listings").Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	batch := make([]*models.Listing, 0, im.batchSize)
	var sales []*models.SaleRecord

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		created, err := im.listings.BulkCreate(ctx, batch)
		if err != nil {
			return err
		}
		stats.MigratedRecords += int64(created)
		batch = batch[:0]
		return nil
	}

	for cur.Next(ctx) {
		var legacy LegacyListing
		if err := cur.Decode(&legacy); err != nil {
			stats.FailedRecords++
			continue
		}
		stats.TotalRecords++

		dealerID, ok := dealerIDs[legacy.DealerSlug]
		if !ok {
			stats.FailedRecords++
			slog.Warn("Skipping listing with unknown dealer",
				slog.String("type", "sys"),
				slog.String("dealer", legacy.DealerSlug),
			)
			continue
		}

		listing := convertListing(legacy, dealerID)
		batch = append(batch, listing)

		if legacy.Sold && !legacy.SoldAt.IsZero() {
			sales = append(sales, &models.SaleRecord{
				ListingRef: listing.Ref,
				DealerID:   dealerID,
				Category:   listing.Category,
				Price:      listing.Price,
				ListedAt:   listing.CreatedAt,
				SoldAt:     legacy.SoldAt,
			})
		}

		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if len(sales) > 0 {
		if _, err := im.pgDB.NewInsert().Model(&sales).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert sale records: %w", err)
		}
	}

	stats.EndTime = time.Now()
	slog.Info("Listings imported",
		slog.String("type", "sys"),
		slog.Int64("migrated", stats.MigratedRecords),
		slog.Int64("failed", stats.FailedRecords),
		slog.Int("sale_records", len(sales)),
	)
	return nil
}
