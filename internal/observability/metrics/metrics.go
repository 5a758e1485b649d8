package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_otp_verifications_total",
			Help: "Total number of OTP verification attempts.",
		},
		[]string{"purpose", "result"},
	)

	PasswordResetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_password_resets_total",
			Help: "Total number of password reset completions.",
		},
		[]string{"result"},
	)

	StatusTogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_status_toggles_total",
			Help: "Total number of administrative active-flag toggles.",
		},
		[]string{"result"},
	)

	GateRedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_gate_redirects_total",
			Help: "Total number of auth gate redirects by target.",
		},
		[]string{"target"},
	)
)

// MustRegister attaches the service label at registration time so the
// vectors stay usable before (and without) registration, e.g. in tests.
func MustRegister(serviceName string) {
	reg := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		prometheus.DefaultRegisterer,
	)
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		RegistrationsTotal,
		LoginsTotal,
		VerificationsTotal,
		PasswordResetsTotal,
		StatusTogglesTotal,
		GateRedirectsTotal,
	)
}
