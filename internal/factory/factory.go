package factory

import (
	"errors"

	"github.com/aweston/charkeep/internal/dependencies/clock"
	"github.com/aweston/charkeep/internal/services/auth"
	"github.com/aweston/charkeep/internal/services/catalog"
	"github.com/aweston/charkeep/internal/services/character"
	"github.com/aweston/charkeep/internal/services/user"
	"github.com/aweston/charkeep/internal/storage"
	"github.com/aweston/charkeep/internal/storage/memory"
	redisstorage "github.com/aweston/charkeep/internal/storage/redis"
	"github.com/aweston/charkeep/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService      *auth.Service
	UserService      *user.Service
	CharacterService *character.Service
	CatalogService   *catalog.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service.
	// Secret is required; zero TTLs fall back to defaults.
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	if cfg.AuthConfig.Secret == "" {
		return nil, errors.New("AuthConfig.Secret is required")
	}

	return newWithDependencies(store, clock.New(), cfg.AuthConfig), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config) *App {
	authService := auth.New(store, clk, authCfg)
	userService := user.New(store, authService, clk)
	characterService := character.New(store)
	catalogService := catalog.New(store)

	return &App{
		Storage:          store,
		Clock:            clk,
		AuthService:      authService,
		UserService:      userService,
		CharacterService: characterService,
		CatalogService:   catalogService,
	}
}
