// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics exports the outcomes of the masternode payment operations
// as prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "beetled"
	subsystem = "mnpayments"
)

var (
	winnersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "mnw_total",
		Help:      "Count of masternode winners received from peers.",
	}, []string{"result"})

	winnerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "mnget_total",
		Help:      "Count of masternode winner requests received from peers.",
	}, []string{"result"})

	blockPayeeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "block_payee_total",
		Help:      "Count of block payee validations.",
	}, []string{"result"})

	votes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "votes",
		Help:      "Number of masternode winners held in memory.",
	})
)

// Payments records the masternode payment metrics.  It implements
// mnpayments.Metrics.
type Payments struct{}

// NewPayments returns the masternode payment metrics.
func NewPayments() *Payments {
	return &Payments{}
}

// WinnerProcessed counts a winner received from a peer.
func (Payments) WinnerProcessed(result string) {
	winnersTotal.WithLabelValues(result).Inc()
}

// WinnersRequested counts a winner request received from a peer.
func (Payments) WinnersRequested(result string) {
	winnerRequestsTotal.WithLabelValues(result).Inc()
}

// BlockPayeeChecked counts a block payee validation.
func (Payments) BlockPayeeChecked(result string) {
	blockPayeeTotal.WithLabelValues(result).Inc()
}

// SetVotes records the number of winners held in memory.
func (Payments) SetVotes(n int) {
	votes.Set(float64(n))
}

// Handler returns the handler serving the metrics of the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
