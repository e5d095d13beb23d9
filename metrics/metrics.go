// Package metrics exposes the Prometheus collectors for the simulation
// engine and the test harness: tick throughput/latency, building occupancy,
// and harness job/worker-pool counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slavakukuyev/elevator-go/internal/constants"
)

const algorithmLabel = "algorithm"

var (
	ticksProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "ticks_processed_total",
			Help:      "Number of simulation ticks processed.",
		},
		[]string{algorithmLabel},
	)

	tickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock time spent executing one Engine.Loop call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{algorithmLabel},
	)

	activeLoads = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "active_loads",
			Help:      "Loads currently waiting or in transit.",
		},
		[]string{algorithmLabel},
	)

	elevatorOccupancy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "elevator_occupancy_ratio",
			Help:      "Carried weight as a fraction of an elevator's max load.",
		},
		[]string{constants.ElevatorNameLabel},
	)

	jobsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "harness_jobs_started_total",
			Help:      "Harness jobs started, by settings name.",
		},
		[]string{"name"},
	)

	jobsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "harness_jobs_completed_total",
			Help:      "Harness jobs that ran to termination, by settings name.",
		},
		[]string{"name"},
	)

	jobsTimedOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "harness_jobs_timed_out_total",
			Help:      "Harness jobs that hit the stall-detection timeout, by settings name.",
		},
		[]string{"name"},
	)

	workerPoolUtilization = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "harness_worker_pool_utilization_ratio",
			Help:      "Fraction of the harness worker pool currently busy.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ticksProcessed, tickDuration, activeLoads, elevatorOccupancy,
		jobsStarted, jobsCompleted, jobsTimedOut, workerPoolUtilization,
	)
}

// TickProcessed records one Engine.Loop call's wall-clock duration for algo.
func TickProcessed(algo string, seconds float64) {
	ticksProcessed.With(prometheus.Labels{algorithmLabel: algo}).Inc()
	tickDuration.With(prometheus.Labels{algorithmLabel: algo}).Observe(seconds)
}

// SetActiveLoads reports how many loads are waiting or in transit for algo.
func SetActiveLoads(algo string, count int) {
	activeLoads.With(prometheus.Labels{algorithmLabel: algo}).Set(float64(count))
}

// SetElevatorOccupancy reports one elevator's current load-weight ratio.
func SetElevatorOccupancy(elevatorName string, ratio float64) {
	elevatorOccupancy.With(prometheus.Labels{constants.ElevatorNameLabel: elevatorName}).Set(ratio)
}

// JobStarted/JobCompleted/JobTimedOut track one harness job's lifecycle.
func JobStarted(name string)   { jobsStarted.With(prometheus.Labels{"name": name}).Inc() }
func JobCompleted(name string) { jobsCompleted.With(prometheus.Labels{"name": name}).Inc() }
func JobTimedOut(name string)  { jobsTimedOut.With(prometheus.Labels{"name": name}).Inc() }

// SetWorkerPoolUtilization reports busy/total worker slots as a ratio in [0, 1].
func SetWorkerPoolUtilization(busy, total int) {
	if total <= 0 {
		workerPoolUtilization.Set(0)
		return
	}
	workerPoolUtilization.Set(float64(busy) / float64(total))
}
