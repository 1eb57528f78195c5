package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProxyRequestsTotal counts proxy calls by request shape and outcome
	// ("ok", "missing_credential", "upstream_error").
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_proxy_requests_total",
			Help: "Total number of news proxy requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// ArticlesServedTotal counts articles returned to clients.
	ArticlesServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_served_total",
			Help: "Total number of articles returned to clients",
		},
		[]string{"mode"},
	)

	// ArticlesDroppedTotal counts upstream articles removed by the display filter.
	ArticlesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_dropped_total",
			Help: "Total number of upstream articles dropped as non-displayable",
		},
		[]string{"mode"},
	)
)
