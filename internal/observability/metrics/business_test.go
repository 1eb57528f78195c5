package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProxyRequest(t *testing.T) {
	ProxyRequestsTotal.Reset()

	RecordProxyRequest("headlines", OutcomeOK)
	RecordProxyRequest("headlines", OutcomeOK)
	RecordProxyRequest("search", OutcomeUpstreamError)

	assert.Equal(t, 2.0, testutil.ToFloat64(ProxyRequestsTotal.WithLabelValues("headlines", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ProxyRequestsTotal.WithLabelValues("search", OutcomeUpstreamError)))
}

func TestRecordArticles(t *testing.T) {
	ArticlesServedTotal.Reset()
	ArticlesDroppedTotal.Reset()

	RecordArticles("headlines", 11, 12)
	RecordArticles("headlines", 5, 5)

	assert.Equal(t, 16.0, testutil.ToFloat64(ArticlesServedTotal.WithLabelValues("headlines")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ArticlesDroppedTotal.WithLabelValues("headlines")))
}
