package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simd_age_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RowsLoadedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simd_age_rows_loaded_total",
			Help: "Total number of data rows read from source files.",
		},
		[]string{"table"},
	)
	LoadDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "simd_age_table_load_duration_seconds",
			Help:       "Duration of each table load in seconds.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"table"},
	)
	ReportsBuiltCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "simd_age_reports_built_total",
			Help: "Total number of produced deprivation reports.",
		},
	)
	MissingSourcesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simd_age_missing_sources_total",
			Help: "Total number of load attempts for absent source files.",
		},
		[]string{"table"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RowsLoadedCounter)
		prometheus.MustRegister(LoadDuration)
		prometheus.MustRegister(ReportsBuiltCounter)
		prometheus.MustRegister(MissingSourcesCounter)
	})
}

// StartMetricsServer exposes /metrics on address. An empty address disables the server.
func StartMetricsServer(address string) {

	Register()
	if address == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Infof("metrics server listening on %s", address)
		if err := http.ListenAndServe(address, mux); err != nil {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()
}
