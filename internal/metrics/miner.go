package metrics

import (
	"time"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	minerSealTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dronedrop",
		Subsystem: "miner",
		Name:      "seal_total",
		Help:      "Count of block seal attempts.",
	}, []string{"difficulty", "hasher", "status"})

	minerSealDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dronedrop",
		Subsystem: "miner",
		Name:      "seal_duration_seconds",
		Help:      "Duration of the nonce search for a block.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 12),
	}, []string{"difficulty", "hasher", "status"})

	minerHashesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dronedrop",
		Subsystem: "miner",
		Name:      "hashes_total",
		Help:      "Count of hash evaluations performed by the nonce search.",
	}, []string{"difficulty", "hasher"})

	minerSealAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dronedrop",
		Subsystem: "miner",
		Name:      "seal_hashes",
		Help:      "Number of hash evaluations per sealed block.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12), // 1..4^11
	}, []string{"difficulty", "hasher"})
)

// Miner tracks metrics for proof-of-work sealing.
type Miner struct {
	difficulty string
	hasher     string
}

// NewMiner constructs a metrics collector for the nonce search.
func NewMiner(difficulty model.Difficulty, hasher string) *Miner {
	d := string(difficulty)
	if d == "" {
		d = "none"
	}
	if hasher == "" {
		hasher = "unknown"
	}
	return &Miner{difficulty: d, hasher: hasher}
}

// ObserveSeal records one seal outcome, its duration and the hashes it took.
func (m Miner) ObserveSeal(err error, attempts uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	minerSealTotal.WithLabelValues(m.difficulty, m.hasher, status).Inc()
	minerSealDuration.WithLabelValues(m.difficulty, m.hasher, status).Observe(time.Since(started).Seconds())
	minerHashesTotal.WithLabelValues(m.difficulty, m.hasher).Add(float64(attempts))
	if err == nil {
		minerSealAttempts.WithLabelValues(m.difficulty, m.hasher).Observe(float64(attempts))
	}
}
