package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cart operation labels.
const (
	CartOpAdd    = "add"
	CartOpUpdate = "update"
	CartOpRemove = "remove"
	CartOpClear  = "clear"
)

// StorefrontMetrics tracks cart mutations, cart restores and locale switches.
type StorefrontMetrics struct {
	cartMutations  *prometheus.CounterVec
	cartPersistErr *prometheus.CounterVec
	cartRecovered  prometheus.Counter
	localeChanges  *prometheus.CounterVec
	localeRejected prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	m := &StorefrontMetrics{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		cartPersistErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Cart writes that failed to reach the session store.",
		}, []string{"op"}),
		cartRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_restore_recovered_total",
			Help: "Cart restores that fell back to an empty cart.",
		}),
		localeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "locale_changes_total",
			Help: "Accepted locale switches by target locale.",
		}, []string{"locale"}),
		localeRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locale_rejected_total",
			Help: "Locale switches ignored because the locale is unsupported.",
		}),
	}
	reg.MustRegister(m.cartMutations, m.cartPersistErr, m.cartRecovered, m.localeChanges, m.localeRejected)
	return m
}

// IncCartMutation counts a cart mutation for op.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCartPersistFailure counts a failed cart write for op.
func (m *StorefrontMetrics) IncCartPersistFailure(op string) {
	if m == nil || m.cartPersistErr == nil {
		return
	}
	m.cartPersistErr.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCartRecovered counts a restore that discarded unreadable state.
func (m *StorefrontMetrics) IncCartRecovered() {
	if m == nil || m.cartRecovered == nil {
		return
	}
	m.cartRecovered.Inc()
}

// IncLocaleChange counts an accepted switch to locale.
func (m *StorefrontMetrics) IncLocaleChange(locale string) {
	if m == nil || m.localeChanges == nil {
		return
	}
	m.localeChanges.WithLabelValues(normalizeLabel(locale)).Inc()
}

// IncLocaleRejected counts an ignored switch.
func (m *StorefrontMetrics) IncLocaleRejected() {
	if m == nil || m.localeRejected == nil {
		return
	}
	m.localeRejected.Inc()
}
