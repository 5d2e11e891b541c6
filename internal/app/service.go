// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/questboost/internal/adapters/repository"
	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/internal/domain/pending"
	"github.com/okian/questboost/pkg/logger"
	"github.com/okian/questboost/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store names accepted by WithStoreName.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type moder interface {
	Mode() string
}

// Service implements the API dependencies for the pending claims lookup.
type Service struct {
	mu sync.RWMutex

	// Core components
	source   pending.Source
	resolver *pending.Resolver
	client   *mongo.Client

	// Configuration
	storeName        string
	mongoURI         string
	database         string
	winsCollection   string
	claimsCollection string
	queryMode        string
	connectTimeout   time.Duration
	seedFile         string

	// State
	started   bool
	startedAt time.Time
	lookups   atomic.Int64
	failures  atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource injects a ready source. Start then skips store construction.
func WithSource(src pending.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithStoreName selects StoreMongo or StoreMemory.
func WithStoreName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.storeName = name
		}
	}
}

// WithMongoURI sets the connection string used by the mongo store.
func WithMongoURI(uri string) Option {
	return func(s *Service) {
		if uri != "" {
			s.mongoURI = uri
		}
	}
}

// WithDatabase sets the database holding the wins and claims collections.
func WithDatabase(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.database = name
		}
	}
}

// WithCollections sets the wins and claims collection names.
func WithCollections(wins, claims string) Option {
	return func(s *Service) {
		if wins != "" {
			s.winsCollection = wins
		}
		if claims != "" {
			s.claimsCollection = claims
		}
	}
}

// WithQueryMode selects how the mongo store expresses the anti-join.
func WithQueryMode(mode string) Option {
	return func(s *Service) {
		if mode != "" {
			s.queryMode = mode
		}
	}
}

// WithConnectTimeout bounds connection and server selection.
func WithConnectTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.connectTimeout = d
		}
	}
}

// WithSeedFile loads wins and claims into the memory store on start.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeName:        StoreMongo,
		mongoURI:         "mongodb://localhost:27017",
		database:         "starknet_quest",
		winsCollection:   repository.DefaultWinsCollection,
		claimsCollection: repository.DefaultClaimsCollection,
		queryMode:        repository.ModePipeline,
		connectTimeout:   10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the store handle, unless one was injected, and the resolver on top of it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting pending claims service...", logger.String("store", s.storeName))

	injected := s.source != nil
	if !injected {
		src, err := s.openSource(ctx)
		if err != nil {
			return err
		}
		s.source = src
	}

	if p, ok := s.source.(pinger); ok {
		pctx, cancel := context.WithTimeout(ctx, s.connectTimeout)
		if err := p.Ping(pctx); err != nil {
			s.logger.Warn(ctx, "store not reachable yet", logger.Error(err))
		}
		cancel()
	}

	s.resolver = pending.NewResolver(s.source, pending.WithLogger(s.logger.Named("pending")))
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "pending claims service started",
		logger.String("store", s.storeName),
		logger.String("queryMode", s.modeOf()),
		logger.String("wins", s.winsCollection),
		logger.String("claims", s.claimsCollection),
		logger.Bool("injectedSource", injected),
	)

	return nil
}

func (s *Service) openSource(ctx context.Context) (pending.Source, error) {
	switch s.storeName {
	case StoreMemory:
		src := repository.NewMemorySource()
		if s.seedFile != "" {
			if err := src.LoadSeed(s.seedFile); err != nil {
				return nil, err
			}
			s.logger.Info(ctx, "loaded seed file", logger.String("path", s.seedFile))
		}
		return src, nil
	case StoreMongo:
		client, err := repository.Connect(ctx, s.mongoURI, s.connectTimeout)
		if err != nil {
			return nil, err
		}
		src, err := repository.NewMongoSource(client.Database(s.database),
			repository.WithCollections(s.winsCollection, s.claimsCollection),
			repository.WithQueryMode(s.queryMode),
			repository.WithLogger(s.logger.Named("repository")),
		)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		s.client = client
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, s.storeName)
	}
}

// Stop releases the store connection.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping pending claims service...")

	var err error
	if s.client != nil {
		err = s.client.Disconnect(ctx)
		s.client = nil
		s.source = nil
	}

	s.started = false
	s.logger.Info(ctx, "pending claims service stopped")
	return err
}

// PendingClaims returns the wins addr has not claimed yet. addr must already be canonical.
func (s *Service) PendingClaims(ctx context.Context, addr string) ([]model.Win, error) {
	s.mu.RLock()
	r := s.resolver
	started := s.started
	s.mu.RUnlock()

	if !started {
		return nil, ErrNotStarted
	}

	s.lookups.Add(1)
	wins, err := r.Resolve(ctx, addr)
	if err != nil {
		s.failures.Add(1)
		return nil, err
	}
	return wins, nil
}

// Ready reports whether the store answers. Sources that cannot be pinged are always ready.
func (s *Service) Ready(ctx context.Context) error {
	s.mu.RLock()
	src := s.source
	started := s.started
	s.mu.RUnlock()

	if !started {
		return ErrNotStarted
	}
	p, ok := src.(pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		metrics.RecordStorePingFailure()
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"store":            s.storeName,
		"database":         s.database,
		"winsCollection":   s.winsCollection,
		"claimsCollection": s.claimsCollection,
		"queryMode":        s.modeOf(),
		"lookups":          s.lookups.Load(),
		"failedLookups":    s.failures.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}

func (s *Service) modeOf() string {
	if m, ok := s.source.(moder); ok {
		return m.Mode()
	}
	if s.storeName == StoreMemory {
		return StoreMemory
	}
	return s.queryMode
}
