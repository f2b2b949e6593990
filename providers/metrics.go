package providers

import "net/http"

// IMetricsProvider defines bridge metrics logic.
type IMetricsProvider interface {
	ObserveRefresh(err error)
	ObserveOpen(err error)
	SetAccessoriesCount(count int)
	Handler() http.Handler
}
