package metrics

import (
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	invocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "process",
		Name:      "invocations_total",
		Help:      "Total number of child process invocations by mode.",
	}, []string{"mode"})

	failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "process",
		Name:      "failures_total",
		Help:      "Total number of fatal invocation failures by kind.",
	}, []string{"kind"})

	capturedBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "process",
		Name:      "captured_output_bytes",
		Help:      "Bytes captured per stream per invocation.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
	}, []string{"stream"})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "process",
		Name:      "build_info",
		Help:      "Build metadata for the running binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(invocations, failures, capturedBytes, buildInfo)
}

// Registry returns the Prometheus registry containing all module metrics.
func Registry() *prometheus.Registry {
	return registry
}

// ObserveInvocation counts one spawn attempt for the given mode.
func ObserveInvocation(mode string) {
	if mode == "" {
		mode = "unknown"
	}
	invocations.WithLabelValues(mode).Inc()
}

// ObserveFailure counts one fatal invocation failure of the given kind.
func ObserveFailure(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	failures.WithLabelValues(kind).Inc()
}

// ObserveCapture records how many bytes one stream delivered.
func ObserveCapture(stream string, n int) {
	if stream == "" || n < 0 {
		return
	}
	capturedBytes.WithLabelValues(stream).Observe(float64(n))
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}
