package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	producerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dronedrop",
		Subsystem: "producer",
		Name:      "blocks_total",
		Help:      "Count of attempts to produce and append a block.",
	}, []string{"status"})

	producerBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dronedrop",
		Subsystem: "producer",
		Name:      "block_duration_seconds",
		Help:      "Duration of building, sealing and appending a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	producerBlockDeliveries = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dronedrop",
		Subsystem: "producer",
		Name:      "block_deliveries",
		Help:      "Number of deliveries per produced block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	})

	producerChainLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dronedrop",
		Subsystem: "producer",
		Name:      "chain_length",
		Help:      "Number of blocks in the chain.",
	})
)

// Producer tracks metrics for the block producer.
type Producer struct{}

func NewProducer() *Producer {
	return &Producer{}
}

func (Producer) ObserveBlock(err error, deliveries int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	producerBlocksTotal.WithLabelValues(status).Inc()
	producerBlockDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		producerBlockDeliveries.Observe(float64(deliveries))
	}
}

func (Producer) SetChainLength(n int) {
	producerChainLength.Set(float64(n))
}
