package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/drivelane/drivelane/drivelane"
	"github.com/drivelane/drivelane/drivelane/database"
	"github.com/drivelane/drivelane/drivelane/logger"
	"github.com/drivelane/drivelane/drivelane/migration"
	"github.com/drivelane/drivelane/drivelane/web/handlers"
	"github.com/drivelane/drivelane/drivelane/web/middleware"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler("drivelane")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Drivelane API",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	importLegacy := flag.String("import-legacy", "", "mongo URI of the legacy backend to import, then continue serving")
	legacyDB := flag.String("legacy-db", "drivelane", "legacy mongo database name")
	recomputeStats := flag.Bool("recompute-stats", false, "recompute market snapshots on startup")
	flag.Parse()

	cfg, err := drivelane.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	a := drivelane.New(*cfg, version, commit)
	a.DB = db
	defer a.Close()

	a.SetupRepositories()
	if err := a.SetupServices(); err != nil {
		slog.Error("Failed to initialize services", slog.Any("error", err))
		os.Exit(-1)
	}

	if *importLegacy != "" {
		slog.Info("Importing legacy data", slog.String("database", *legacyDB))
		importer, err := migration.NewImporter(*importLegacy, *legacyDB, db.BunDB(), a.DealerRepository, a.ListingRepository)
		if err != nil {
			slog.Error("Failed to connect to legacy backend", slog.Any("error", err))
			os.Exit(-1)
		}
		if err := importer.Run(ctx); err != nil {
			slog.Error("Legacy import failed", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	if *recomputeStats {
		slog.Info("Recomputing market snapshots...")
		if err := a.Monitor.SnapshotNow(ctx); err != nil {
			slog.Error("Snapshot recompute failed", slog.Any("error", err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Drivelane API",
		ServerHeader: "Drivelane",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(cfg),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		DB:             db,
		Listings:       a.ListingRepository,
		Dealers:        a.DealerRepository,
		Users:          a.UserRepository,
		Comparisons:    a.ComparisonRepository,
		SearchService:  a.SearchService,
		CompareService: a.CompareService,
		SessionService: a.SessionService,
		MediaService:   a.MediaService,
		Monitor:        a.Monitor,
		Version:        version,
	}

	handlers.SetupRoutes(app, webApp)

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	go a.Monitor.Run(runCtx)
	go pruneSessions(runCtx, a)

	slog.Info("Starting server", slog.String("address", cfg.Server.Addr))
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	slog.Info("Shutting down...")
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}

	slog.Info("Shutdown complete")
}

func corsOrigins(cfg *drivelane.Config) string {
	if len(cfg.Server.CORSOrigins) == 0 {
		return "http://localhost:3000"
	}
	origins := cfg.Server.CORSOrigins[0]
	for _, origin := range cfg.Server.CORSOrigins[1:] {
		origins += "," + origin
	}
	return origins
}

// pruneSessions drops expired sessions once an hour.
func pruneSessions(ctx context.Context, a *drivelane.App) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.SessionService.PruneExpired(ctx)
			if err != nil {
				slog.Error("Session prune failed", slog.Any("error", err))
				continue
			}
			if n > 0 {
				slog.Info("Expired sessions pruned", slog.Int64("count", n))
			}
		}
	}
}
