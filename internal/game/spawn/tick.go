package spawn

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/realm/internal/game/world"
)

// Populator creates creatures for a spawner. It is implemented by the
// creature subsystem.
type Populator interface {
	// Populate attempts to create want creatures for sp and returns how many
	// were actually created.
	Populate(ctx context.Context, sp *Spawner, want int) int
}

// TickResult summarizes one pass over the registry.
type TickResult struct {
	// Spawners is the number of spawners visited.
	Spawners int
	// Deficit is the total shortfall before populating.
	Deficit int
	// Spawned is the number of creatures created this tick.
	Spawned int
}

// TickManager periodically tops up every registered spawner to its limit.
//
// Concurrency: Tick must not be called concurrently with itself; Run drives
// it from a single goroutine.
type TickManager struct {
	interval  time.Duration
	registry  *world.Registry
	populator Populator
	logger    *zap.Logger
	observe   func(TickResult)
}

// TickOption configures a TickManager.
type TickOption func(*TickManager)

// WithTickObserver registers fn to receive the result of every tick.
func WithTickObserver(fn func(TickResult)) TickOption {
	return func(t *TickManager) { t.observe = fn }
}

// NewTickManager returns a manager that ticks every interval.
//
// Precondition: interval must be > 0; registry, populator and logger must be non-nil.
func NewTickManager(interval time.Duration, registry *world.Registry, populator Populator, logger *zap.Logger, opts ...TickOption) *TickManager {
	if interval <= 0 {
		panic("spawn.NewTickManager: interval must be > 0")
	}
	t := &TickManager{
		interval:  interval,
		registry:  registry,
		populator: populator,
		logger:    logger,
		observe:   func(TickResult) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tick visits every spawner in the registry and asks the populator to fill
// each one's deficit. Spawners not built by this package are skipped.
//
// Postcondition: Each visited spawner's Live count has grown by the number of
// creatures the populator reported.
func (t *TickManager) Tick(ctx context.Context) TickResult {
	var res TickResult
	t.registry.RangeSpawners(func(ws world.Spawner) bool {
		if ctx.Err() != nil {
			return false
		}
		sp, ok := ws.(*Spawner)
		if !ok {
			return true
		}
		res.Spawners++
		want := sp.Deficit()
		if want == 0 {
			return true
		}
		res.Deficit += want
		got := min(max(t.populator.Populate(ctx, sp, want), 0), want)
		sp.Spawned(got)
		res.Spawned += got
		return true
	})
	t.observe(res)
	return res
}

// Run ticks once per interval until ctx is cancelled.
//
// Postcondition: Returns ctx.Err() after cancellation.
func (t *TickManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			res := t.Tick(ctx)
			if res.Deficit > 0 {
				t.logger.Debug("spawn tick",
					zap.Int("spawners", res.Spawners),
					zap.Int("deficit", res.Deficit),
					zap.Int("spawned", res.Spawned),
				)
			}
		}
	}
}

// Start runs the tick loop in a new goroutine until ctx is cancelled.
func (t *TickManager) Start(ctx context.Context) {
	go func() { _ = t.Run(ctx) }()
}

// LogPopulator reports deficits without creating creatures. It stands in for
// the creature subsystem when the world runs on its own.
type LogPopulator struct {
	Logger *zap.Logger
}

// Populate logs the request and creates nothing.
func (p LogPopulator) Populate(_ context.Context, sp *Spawner, want int) int {
	p.Logger.Debug("spawner below limit",
		zap.String("spawner", sp.ID()),
		zap.Stringer("region", sp.Region()),
		zap.Stringer("creatures", sp.Creatures()),
		zap.Int("want", want),
	)
	return 0
}
