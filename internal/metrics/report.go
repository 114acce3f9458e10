package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "blocks_info",
		Name:      "runs_total",
		Help:      "Count of report runs.",
	}, []string{"network", "status"})

	reportRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "blocks_info",
		Name:      "run_duration_seconds",
		Help:      "Duration of a full report run.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"network", "status"})

	reportRunBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "blocks_info",
		Name:      "run_blocks",
		Help:      "Number of blocks reported per run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	reportProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "blocks_info",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of building a single report row.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	reportLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "blocks_info",
		Name:      "last_height",
		Help:      "Height of the most recently reported block.",
	}, []string{"network"})
)

// Report tracks metrics for block report runs. It is not safe for
// concurrent use.
type Report struct {
	network model.Network
	blocks  int
}

// NewReport constructs a metrics collector for report runs.
func NewReport(network model.Network) *Report {
	if network == "" {
		network = "unknown"
	}
	return &Report{network: network}
}

// ObserveRun records the outcome of a whole run along with the number of
// rows built since the collector was created.
func (m *Report) ObserveRun(err error, started time.Time) {
	status := statusOf(err)
	reportRunTotal.WithLabelValues(string(m.network), status).Inc()
	reportRunDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	reportRunBlocks.WithLabelValues(string(m.network)).Observe(float64(m.blocks))
}

// Blocks returns the number of rows built successfully.
func (m *Report) Blocks() int {
	return m.blocks
}

// ObserveProcessHeight records how long one row took to build.
func (m *Report) ObserveProcessHeight(err error, height uint64, started time.Time) {
	status := statusOf(err)
	reportProcessHeightDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		m.blocks++
		reportLastHeight.WithLabelValues(string(m.network)).Set(float64(height))
	}
}
