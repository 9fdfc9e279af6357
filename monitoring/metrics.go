package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gastro_frames_processed_total",
			Help: "Frames processed by the detection loop",
		},
	)

	detections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastro_detections_total",
			Help: "Detection results per kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastro_orders_created_total",
			Help: "Orders persisted, by origin",
		},
		[]string{"source"},
	)

	slaPenalties = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastro_sla_penalties_total",
			Help: "Waiter penalties applied, by path",
		},
		[]string{"path"},
	)

	waiterPerformance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gastro_waiter_performance",
			Help: "Current performance score per waiter",
		},
		[]string{"waiter_id"},
	)

	waiterInterest = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gastro_waiter_interest_level",
			Help: "Current interest level per waiter",
		},
		[]string{"waiter_id"},
	)

	tablesByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gastro_tables",
			Help: "Number of tables per status",
		},
		[]string{"status"},
	)
)

func TrackFrame() {
	framesProcessed.Inc()
}

// TrackDetection: kind là "code" hoặc "food"; outcome là "hit", "miss" hoặc "unavailable".
func TrackDetection(kind, outcome string) {
	detections.WithLabelValues(kind, outcome).Inc()
}

func TrackOrder(source string) {
	ordersCreated.WithLabelValues(source).Inc()
}

func TrackPenalty(path string) {
	slaPenalties.WithLabelValues(path).Inc()
}
