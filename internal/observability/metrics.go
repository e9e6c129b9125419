package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const metricsNamespace = "realm"

// WorldMetrics holds the Prometheus collectors describing the world graph.
type WorldMetrics struct {
	spawnersCreated  *prometheus.CounterVec
	zones            prometheus.Gauge
	regions          prometheus.Gauge
	spawnDeficit     prometheus.Gauge
	creaturesSpawned prometheus.Counter
}

// NewWorldMetrics creates the world collectors and registers them with reg.
//
// Precondition: reg must be non-nil and must not already hold these collectors.
// Postcondition: Returns registered WorldMetrics or a non-nil error.
func NewWorldMetrics(reg prometheus.Registerer) (*WorldMetrics, error) {
	m := &WorldMetrics{
		spawnersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "spawners_created_total",
			Help:      "Spawners registered, by region.",
		}, []string{"region"}),
		zones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "zones_registered",
			Help:      "Discoverable zones in the shared registry.",
		}),
		regions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "regions_loaded",
			Help:      "Regions in the world graph.",
		}),
		spawnDeficit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "spawn_deficit",
			Help:      "Creatures missing from spawners at the last tick.",
		}),
		creaturesSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "creatures_spawned_total",
			Help:      "Creatures created by the spawn tick.",
		}),
	}
	for _, c := range []prometheus.Collector{m.spawnersCreated, m.zones, m.regions, m.spawnDeficit, m.creaturesSpawned} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SpawnerCreated increments the per-region spawner counter.
func (m *WorldMetrics) SpawnerCreated(region string) {
	m.spawnersCreated.WithLabelValues(region).Inc()
}

// SetWorldSize records the number of regions and zones after the world is built.
func (m *WorldMetrics) SetWorldSize(regions, zones int) {
	m.regions.Set(float64(regions))
	m.zones.Set(float64(zones))
}

// ObserveTick records the deficit and creatures spawned by one spawn tick.
func (m *WorldMetrics) ObserveTick(deficit, spawned int) {
	m.spawnDeficit.Set(float64(deficit))
	if spawned > 0 {
		m.creaturesSpawned.Add(float64(spawned))
	}
}

// MetricsHandler returns an HTTP handler exposing the collectors in g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// SpawnEventSink logs spawner creation and feeds WorldMetrics. It satisfies
// the world registry's notifier contract and never blocks.
type SpawnEventSink struct {
	logger  *zap.Logger
	metrics *WorldMetrics
}

// NewSpawnEventSink creates a sink. metrics may be nil.
//
// Precondition: logger must be non-nil.
func NewSpawnEventSink(logger *zap.Logger, metrics *WorldMetrics) *SpawnEventSink {
	return &SpawnEventSink{logger: logger, metrics: metrics}
}

// SpawnerCreated records a newly registered spawner.
func (s *SpawnEventSink) SpawnerCreated(region, spawnerID string, homeX, homeY int) {
	s.logger.Info("spawner created",
		zap.String("region", region),
		zap.String("spawner", spawnerID),
		zap.Int("home_x", homeX),
		zap.Int("home_y", homeY),
	)
	if s.metrics != nil {
		s.metrics.SpawnerCreated(region)
	}
}
