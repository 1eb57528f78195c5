// Package metrics provides the Prometheus business metrics of the news proxy.
//
// HTTP transport metrics live with the middleware in internal/handler/http and
// provider call metrics in internal/infra/newsapi; this package counts what the
// proxy actually served.
package metrics
