package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	CatalogSourceMemory = "memory"
	CatalogSourceMongo  = "mongo"
)

type catalogEnv struct {
	Source    string `env:"CATALOG_SOURCE" envDefault:"memory"`
	Bootstrap bool   `env:"CATALOG_BOOTSTRAP" envDefault:"true"`
	SeedPath  string `env:"CATALOG_SEED_PATH"`

	// Read-through cache in front of the mongo catalog; 0 disables it.
	CacheSize int           `env:"CATALOG_CACHE_SIZE" envDefault:"0"`
	CacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
}

type catalog struct {
	raw catalogEnv
}

func NewCatalogConfig() (*catalog, error) {
	var raw catalogEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	if raw.CacheSize < 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_SIZE must be >= 0, got %d", raw.CacheSize)
	}

	switch raw.Source {
	case CatalogSourceMemory, CatalogSourceMongo:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceMemory, CatalogSourceMongo, raw.Source)
	}
	return &catalog{raw: raw}, nil
}

func (cfg *catalog) Source() string          { return cfg.raw.Source }
func (cfg *catalog) IsMongo() bool           { return cfg.raw.Source == CatalogSourceMongo }
func (cfg *catalog) Bootstrap() bool         { return cfg.raw.Bootstrap }
func (cfg *catalog) SeedPath() string        { return cfg.raw.SeedPath }
func (cfg *catalog) CacheSize() int          { return cfg.raw.CacheSize }
func (cfg *catalog) CacheTTL() time.Duration { return cfg.raw.CacheTTL }
