package config

import "time"

// Application-wide constants organized by domain

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	SuggestionLimit = 8
)

// Database and performance
const (
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	StatsQueryTimeout   = 30 * time.Second
	BatchQueryTimeout   = 2 * time.Minute
	NetworkDialTimeout  = 5 * time.Second

	// Cache settings
	CacheExpiration           = 5 * time.Minute
	ComparisonCacheExpiration = 15 * time.Minute
	CacheSize                 = 10000

	// Batch processing
	DefaultBatchSize     = 500
	MaxConcurrentBatches = 5
	MaxRetries           = 3
)

// Market analytics
const (
	SnapshotInterval      = 6 * time.Hour
	DefaultSoldWindow     = 30 * 24 * time.Hour
	MinListingsForMedians = 3
)

// API and rate limiting
const (
	GlobalRateLimit = 120
	RateLimitWindow = 1 * time.Minute
	RequestTimeout  = 30 * time.Second
	MaxRequestSize  = 1024 * 1024 // 1MB
)

// Sessions
const (
	SessionTTL        = 24 * time.Hour
	SessionHeader     = "Authorization"
	MaxUsernameLength = 32
)

// File and storage
const (
	ListingPhotoRoot = "listings/"
	MaxPhotosPerCar  = 12
)
