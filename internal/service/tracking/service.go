package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sakewinkel/console/internal/cache"
	"github.com/sakewinkel/console/internal/config"
	"github.com/sakewinkel/console/internal/entity"
	repo "github.com/sakewinkel/console/internal/repository/tracking"
	"github.com/sakewinkel/console/internal/tracking"
	"github.com/sakewinkel/console/pkg/errorbank"
)

const instrumentationName = "github.com/sakewinkel/console/service/tracking"

var serviceTracer = otel.Tracer(instrumentationName)

const (
	// MaxPageSize bounds caller supplied page sizes.
	MaxPageSize = 100

	statusCacheKey = "tracking:statuses"

	TitleTrackingFailed = "Error fetching order tracking data"
	TitleStatsFailed    = "Error fetching order statistics"
	TitleStatusesFailed = "Error fetching order statuses"
)

// Store is the raw fulfillment store tracking queries read from.
type Store interface {
	Dataset(ctx context.Context) (tracking.Dataset, error)
	OrderDataset(ctx context.Context, id int64) (tracking.Dataset, error)
	OrderStates(ctx context.Context) ([]entity.Order, error)
	Statuses(ctx context.Context) ([]entity.OrderStatus, error)
}

// Service answers order tracking queries. Query methods never return errors:
// failures are reported as a Notice next to an empty result.
type Service struct {
	store       Store
	statuses    *cache.Entry[[]entity.OrderStatus]
	engine      *tracking.Engine
	pageSize    int
	terminalKey string
	logger      *zap.Logger

	queryDuration metric.Float64Histogram
	anomalies     metric.Int64Counter
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store  Store
	Cache  cache.Store `optional:"true"`
	Config config.Config
	Logger *zap.Logger
	Meters metric.MeterProvider `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := p.Config.Tracking.PageSize
	if pageSize <= 0 {
		pageSize = tracking.DefaultPageSize
	}

	meters := p.Meters
	if meters == nil {
		meters = otel.GetMeterProvider()
	}
	meter := meters.Meter(instrumentationName)

	queryDuration, err := meter.Float64Histogram("tracking.query.duration",
		metric.WithDescription("Duration of tracking queries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	anomalies, err := meter.Int64Counter("tracking.record.anomalies",
		metric.WithDescription("Tracking records flagged with data anomalies"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:         p.Store,
		statuses:      cache.NewEntry[[]entity.OrderStatus](p.Cache, statusCacheKey, p.Config.Tracking.StatusCacheTTL),
		engine:        tracking.NewEngine(p.Config.Tracking.Location),
		pageSize:      pageSize,
		terminalKey:   p.Config.Tracking.TerminalStatus,
		logger:        logger,
		queryDuration: queryDuration,
		anomalies:     anomalies,
	}, nil
}

// ListResult is one page of filtered tracking records.
type ListResult struct {
	Filter tracking.Filter
	Page   tracking.Page[tracking.Record]
	Notice *errorbank.Notice
}

// StatsResult carries the order statistics.
type StatsResult struct {
	Stats  tracking.Stats
	Notice *errorbank.Notice
}

// StatusesResult carries the status names for filter selection.
type StatusesResult struct {
	Names  []string
	Notice *errorbank.Notice
}

// Dashboard combines the independently loaded sections of the tracking page.
type Dashboard struct {
	List     ListResult
	Stats    StatsResult
	Statuses StatusesResult
}

// PageSize returns the configured default page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Records returns every tracking record matching f, newest first.
func (s *Service) Records(ctx context.Context, f tracking.Filter) ([]tracking.Record, error) {
	ctx, span := serviceTracer.Start(ctx, "TrackingService.Records", trace.WithAttributes(
		attribute.Bool("filter.empty", f.IsZero()),
	))
	defer span.End()
	defer s.observe(ctx, "records", time.Now())

	ds, err := s.store.Dataset(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return nil, errorbank.Unavailable("failed to load orders", errorbank.WithCause(err))
	}

	records := tracking.ProjectAll(tracking.Join(ds))
	s.reportAnomalies(ctx, records)
	return s.engine.Apply(records, f), nil
}

// List returns the requested page of records matching f. A non-positive size
// selects the configured page size.
func (s *Service) List(ctx context.Context, f tracking.Filter, page, size int) ListResult {
	size = s.clampSize(size)
	records, err := s.Records(ctx, f)
	if err != nil {
		s.logger.Warn("tracking query failed", zap.Error(err))
		return ListResult{
			Filter: f,
			Page:   tracking.Paginate([]tracking.Record{}, size, 1),
			Notice: errorbank.NoticeFrom(TitleTrackingFailed, err),
		}
	}
	return ListResult{Filter: f, Page: tracking.Paginate(records, size, page)}
}

// Order returns the tracking record of a single order.
func (s *Service) Order(ctx context.Context, id int64) (tracking.Record, error) {
	ctx, span := serviceTracer.Start(ctx, "TrackingService.Order", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	ds, err := s.store.OrderDataset(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return tracking.Record{}, errorbank.NotFound("order not found", errorbank.WithDetail("id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return tracking.Record{}, errorbank.Unavailable("failed to load order", errorbank.WithCause(err))
	}

	rows := tracking.Join(ds)
	if len(rows) == 0 {
		return tracking.Record{}, errorbank.NotFound("order not found", errorbank.WithDetail("id", id))
	}
	rec := tracking.Project(rows[0])
	s.reportAnomalies(ctx, []tracking.Record{rec})
	return rec, nil
}

// Stats computes order statistics over every live order, ignoring any filter.
func (s *Service) Stats(ctx context.Context) StatsResult {
	ctx, span := serviceTracer.Start(ctx, "TrackingService.Stats")
	defer span.End()
	defer s.observe(ctx, "stats", time.Now())

	stats, err := s.stats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stats failed")
		s.logger.Warn("tracking stats failed", zap.Error(err))
		return StatsResult{Notice: errorbank.NoticeFrom(TitleStatsFailed, err)}
	}
	return StatsResult{Stats: stats}
}

func (s *Service) stats(ctx context.Context) (tracking.Stats, error) {
	orders, err := s.store.OrderStates(ctx)
	if err != nil {
		return tracking.Stats{}, errorbank.Unavailable("failed to load orders", errorbank.WithCause(err))
	}
	catalog, err := s.catalog(ctx)
	if err != nil {
		return tracking.Stats{}, err
	}
	if !catalog.HasTerminal() {
		s.logger.Warn("terminal status missing from catalog", zap.String("terminal", s.terminalKey))
	}
	return tracking.Aggregate(orders, catalog), nil
}

// StatusNames returns the catalog status names in natural order.
func (s *Service) StatusNames(ctx context.Context) StatusesResult {
	ctx, span := serviceTracer.Start(ctx, "TrackingService.StatusNames")
	defer span.End()

	catalog, err := s.catalog(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("tracking statuses failed", zap.Error(err))
		return StatusesResult{Names: []string{}, Notice: errorbank.NoticeFrom(TitleStatusesFailed, err)}
	}
	return StatusesResult{Names: catalog.Names()}
}

// Dashboard loads list, stats and statuses concurrently. Each section fails
// on its own without affecting the others.
func (s *Service) Dashboard(ctx context.Context, f tracking.Filter, page, size int) Dashboard {
	var (
		d  Dashboard
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		d.List = s.List(ctx, f, page, size)
	}()
	go func() {
		defer wg.Done()
		d.Stats = s.Stats(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Statuses = s.StatusNames(ctx)
	}()
	wg.Wait()
	return d
}

// InvalidateCatalog drops the cached status catalog.
func (s *Service) InvalidateCatalog(ctx context.Context) error {
	return s.statuses.Invalidate(ctx)
}

func (s *Service) catalog(ctx context.Context) (*tracking.Catalog, error) {
	statuses, err := s.statuses.Load(ctx)
	if err == nil {
		return tracking.NewCatalog(statuses, s.terminalKey), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("status cache read failed", zap.Error(err))
	}

	statuses, err = s.store.Statuses(ctx)
	if err != nil {
		return nil, errorbank.Unavailable("failed to load order statuses", errorbank.WithCause(err))
	}
	if err := s.statuses.Save(ctx, statuses); err != nil {
		s.logger.Warn("status cache write failed", zap.Error(err))
	}
	return tracking.NewCatalog(statuses, s.terminalKey), nil
}

func (s *Service) clampSize(size int) int {
	if size <= 0 {
		return s.pageSize
	}
	return min(size, MaxPageSize)
}

func (s *Service) reportAnomalies(ctx context.Context, records []tracking.Record) {
	for _, rec := range records {
		for _, a := range rec.Anomalies {
			s.anomalies.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(a))))
			s.logger.Warn("tracking record anomaly", zap.Int64("order_id", rec.OrderID), zap.String("anomaly", string(a)))
		}
	}
}

func (s *Service) observe(ctx context.Context, query string, start time.Time) {
	s.queryDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("query", query)))
}
