package reports

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the upstream data contract the engine depends on.
type Fetcher interface {
	CurrentStock(ctx context.Context) ([]StockRow, error)
	LowStock(ctx context.Context) ([]StockRow, error)
	MovementSeries(ctx context.Context, scale Scale) ([]MovementRow, error)
	TopMoving(ctx context.Context) ([]TopMovingRow, error)
	Transactions(ctx context.Context, query TxnQuery) ([]TransactionRow, error)
}

// Service coordinates dataset reloads, filtering, aggregation and drill-down
// against the snapshot store. It performs no rendering: every user action
// maps to one method returning a value that fully describes what a sink
// should paint.
type Service struct {
	fetcher Fetcher
	store   *Store
	cache   *Cache
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the engine dependencies.
func NewService(fetcher Fetcher, store *Store, cache *Cache, logger *slog.Logger) *Service {
	if store == nil {
		store = NewStore()
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// DashboardData carries everything one report view update needs. The
// transport layer turns it into a view model; the engine itself stays free
// of rendering concerns.
type DashboardData struct {
	Filter    Filter
	Scale     Scale
	KPI       KPISummary
	Series    Series
	Cur       []StockRow
	Low       []StockRow
	Top       []TopMovingRow
	Txns      []TransactionRow
	FetchedAt time.Time
}

// Reload fetches all four report datasets concurrently and swaps the
// snapshot atomically. Either every dataset lands from the same cycle or
// none does; a reload that was overtaken by a newer one is discarded.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	gen := s.store.Begin()

	snap := &Snapshot{FetchedAt: s.now().UTC()}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.fetcher.CurrentStock(ctx)
		if err != nil {
			return err
		}
		snap.Cur = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetcher.LowStock(ctx)
		if err != nil {
			return err
		}
		snap.Low = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.monthlyRows(ctx)
		if err != nil {
			return err
		}
		snap.Monthly = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetcher.TopMoving(ctx)
		if err != nil {
			return err
		}
		snap.Top = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !s.store.Publish(gen, snap) {
		// A newer reload won the race; serve its result instead.
		if current, ok := s.store.Load(); ok {
			s.logInfo("reload superseded", slog.Uint64("generation", gen))
			return current, nil
		}
	}
	return snap, nil
}

// snapshot returns the current snapshot, reloading once when empty.
func (s *Service) snapshot(ctx context.Context) (*Snapshot, error) {
	if snap, ok := s.store.Load(); ok {
		return snap, nil
	}
	return s.Reload(ctx)
}

// Dashboard answers one filter-apply action: predicate the cached datasets,
// recompute KPIs, aggregate the movement series for the active scale, and
// fetch the detail transactions for the filter scope.
func (s *Service) Dashboard(ctx context.Context, filter Filter, scale Scale, dates DateRange) (DashboardData, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return DashboardData{}, err
	}

	cur := FilterStock(snap.Cur, filter)
	low := FilterStock(snap.Low, filter)
	top := FilterTopMoving(snap.Top, filter)
	monthlyFiltered := FilterMovements(snap.Monthly, filter)

	series, err := s.SeriesForScale(ctx, scale)
	if err != nil {
		return DashboardData{}, err
	}

	txns, err := s.fetcher.Transactions(ctx, TxnQuery{
		WarehouseID: filter.WarehouseID,
		ProductID:   filter.ProductID,
		From:        dates.From,
		To:          dates.To,
	})
	if err != nil {
		return DashboardData{}, err
	}

	return DashboardData{
		Filter:    filter,
		Scale:     scale,
		KPI:       Summarize(cur, low, monthlyFiltered),
		Series:    series,
		Cur:       cur,
		Low:       low,
		Top:       top,
		Txns:      txns,
		FetchedAt: snap.FetchedAt,
	}, nil
}

// SeriesForScale aggregates the movement series for a scale switch. Month
// reuses the snapshot's eagerly cached dataset; week and day are fetched
// fresh on every request and never stored.
func (s *Service) SeriesForScale(ctx context.Context, scale Scale) (Series, error) {
	if scale == ScaleMonth {
		snap, err := s.snapshot(ctx)
		if err != nil {
			return Series{}, err
		}
		return Aggregate(snap.Monthly), nil
	}
	rows, err := s.fetcher.MovementSeries(ctx, scale)
	if err != nil {
		return Series{}, err
	}
	return Aggregate(rows), nil
}

// Drilldown resolves a clicked chart bucket to a date range and fetches the
// detail transactions for it. The result is independent of the snapshot.
func (s *Service) Drilldown(ctx context.Context, scale Scale, label string, filter Filter) (DateRange, []TransactionRow, error) {
	dates, err := ResolveRange(scale, label, s.now())
	if err != nil {
		return DateRange{}, nil, err
	}
	txns, err := s.fetcher.Transactions(ctx, TxnQuery{
		WarehouseID: filter.WarehouseID,
		ProductID:   filter.ProductID,
		From:        dates.From,
		To:          dates.To,
	})
	if err != nil {
		return DateRange{}, nil, err
	}
	return dates, txns, nil
}

// WarmMonthly refreshes the versioned monthly cache so the next reload finds
// it populated. Used by the background warmup job.
func (s *Service) WarmMonthly(ctx context.Context) error {
	if err := s.cache.Bump(ctx); err != nil {
		return err
	}
	_, err := s.monthlyRows(ctx)
	return err
}

// monthlyRows loads the monthly dataset through the versioned cache when one
// is configured. Week/day series deliberately bypass this path.
func (s *Service) monthlyRows(ctx context.Context) ([]MovementRow, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.fetcher.MovementSeries(ctx, ScaleMonth)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]MovementRow), nil
	}

	key, err := s.cache.BuildKey(ctx, keyMonthly())
	if err != nil {
		return nil, err
	}
	var rows []MovementRow
	if err := s.cache.FetchJSON(ctx, key, &rows, loader); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
