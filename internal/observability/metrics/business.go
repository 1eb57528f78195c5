package metrics

// Outcome labels for ProxyRequestsTotal.
const (
	OutcomeOK                = "ok"
	OutcomeMissingCredential = "missing_credential"
	OutcomeUpstreamError     = "upstream_error"
)

// RecordProxyRequest records one proxy call.
func RecordProxyRequest(mode, outcome string) {
	ProxyRequestsTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordArticles records how many articles were served and how many the
// display filter dropped. totalReceived is the number the provider returned
// on this page, not its totalResults.
func RecordArticles(mode string, served, totalReceived int) {
	ArticlesServedTotal.WithLabelValues(mode).Add(float64(served))
	if dropped := totalReceived - served; dropped > 0 {
		ArticlesDroppedTotal.WithLabelValues(mode).Add(float64(dropped))
	}
}
