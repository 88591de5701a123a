package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/redisclient"
	"relief-coordinator/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const resourceColumns = "id, name, status, details, location, contact"

// Store is the catalog/recommendation source: Postgres-backed relief
// resources with an optional redis read-through cache.
type Store struct {
	db       *sqlx.DB
	cache    *redisclient.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStore connects to the catalog database
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, logger: util.GetLogger()}, nil
}

// WithCache enables a read-through cache for single-resource lookups
func (s *Store) WithCache(cache *redisclient.Client, ttl time.Duration) *Store {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Resources retrieves the full catalog ordered by name
func (s *Store) Resources(ctx context.Context) ([]models.ResourceItem, error) {
	ctx, span := util.StartSpan(ctx, "Catalog.Resources")
	defer span.End()

	var resources []models.ResourceItem
	err := s.db.SelectContext(ctx, &resources,
		fmt.Sprintf("SELECT %s FROM resources ORDER BY name", resourceColumns))
	return resources, err
}

// ResourceByID retrieves a single resource, consulting the cache first
func (s *Store) ResourceByID(ctx context.Context, id string) (*models.ResourceItem, error) {
	ctx, span := util.StartSpan(ctx, "Catalog.ResourceByID")
	defer span.End()

	if s.cache != nil {
		payload, err := s.cache.CachedResource(ctx, id)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if payload != nil {
			var item models.ResourceItem
			if err := json.Unmarshal(payload, &item); err == nil {
				return &item, nil
			}
		}
	}

	var item models.ResourceItem
	err := s.db.GetContext(ctx, &item,
		fmt.Sprintf("SELECT %s FROM resources WHERE id = $1", resourceColumns), id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resource not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(item); err == nil {
			if err := s.cache.CacheResource(ctx, id, payload, s.cacheTTL); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}

	return &item, nil
}

// ResourcesByIDs retrieves multiple resources by id
func (s *Store) ResourcesByIDs(ctx context.Context, ids []string) ([]models.ResourceItem, error) {
	if len(ids) == 0 {
		return []models.ResourceItem{}, nil
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM resources WHERE id IN (?)", resourceColumns), ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var resources []models.ResourceItem
	err = s.db.SelectContext(ctx, &resources, query, args...)
	return resources, err
}
