package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Operation Metrics
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_operations_total",
			Help: "Total number of ledger operations",
		},
		[]string{"operation", "outcome"},
	)

	OperationAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bankist_operation_amount",
			Help:    "Amounts of applied ledger operations",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
		},
		[]string{"operation"},
	)

	// Directory Metrics
	AccountsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bankist_accounts_total",
			Help: "Number of accounts currently in the directory",
		},
	)

	// Authentication Metrics
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankist_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"},
	)

	AuthTokensGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankist_auth_tokens_generated_total",
			Help: "Total number of session tokens generated",
		},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordOperation records a ledger operation and its tagged outcome
func RecordOperation(operation, outcome string, amount float64) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	if outcome == "applied" {
		OperationAmount.WithLabelValues(operation).Observe(amount)
	}
}

// RecordAuthAttempt records authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	AuthAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordAuthTokenGenerated records session token generation
func RecordAuthTokenGenerated() {
	AuthTokensGenerated.Inc()
}

// UpdateAccountsTotal updates the directory size gauge
func UpdateAccountsTotal(count int) {
	AccountsTotal.Set(float64(count))
}
