package drivelane

import (
	"github.com/drivelane/drivelane/drivelane/analytics"
	"github.com/drivelane/drivelane/drivelane/database"
	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/drivelane/drivelane/drivelane/services"
)

// App holds every long-lived component of the marketplace backend.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB *database.DB

	ListingRepository    repositories.ListingRepository
	DealerRepository     repositories.DealerRepository
	UserRepository       repositories.UserRepository
	ComparisonRepository repositories.ComparisonRepository
	StatsRepository      repositories.StatsRepository

	SearchService   *services.SearchService
	CompareService  *services.CompareService
	SessionService  *services.SessionService
	MediaService    *services.MediaService
	ComparisonCache *services.ComparisonCache
	Monitor         *analytics.Monitor
}

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// SetupRepositories builds the repository layer. The database must be
// connected first.
func (a *App) SetupRepositories() {
	bunDB := a.DB.BunDB()
	a.ListingRepository = repositories.NewListingRepository(bunDB)
	a.DealerRepository = repositories.NewDealerRepository(bunDB)
	a.UserRepository = repositories.NewUserRepository(bunDB)
	a.ComparisonRepository = repositories.NewComparisonRepository(bunDB)
	a.StatsRepository = repositories.NewStatsRepository(bunDB)
}

// SetupServices builds the service layer on top of the repositories.
func (a *App) SetupServices() error {
	a.ComparisonCache = services.NewComparisonCache(a.Cfg.Redis.Addr, a.Cfg.Redis.Password)
	a.SearchService = services.NewSearchService(a.ListingRepository)
	a.CompareService = services.NewCompareService(a.ListingRepository, a.ComparisonCache)
	a.SessionService = services.NewSessionService(a.UserRepository, a.Cfg.Server.SessionSecret)

	if a.Cfg.Media.Bucket != "" {
		media, err := services.NewMediaService(
			a.Cfg.Media.Key,
			a.Cfg.Media.Secret,
			a.Cfg.Media.Region,
			a.Cfg.Media.Bucket,
			a.Cfg.Media.PhotoRoot,
		)
		if err != nil {
			return err
		}
		a.MediaService = media
	}

	a.Monitor = analytics.NewMonitor(
		a.ListingRepository,
		a.StatsRepository,
		a.Cfg.Market.SnapshotInterval(),
		a.Cfg.Market.SoldWindow(),
	)
	return nil
}

// Close releases all held connections.
func (a *App) Close() {
	if a.ComparisonCache != nil {
		a.ComparisonCache.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
