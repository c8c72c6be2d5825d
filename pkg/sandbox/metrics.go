package sandbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesMetric = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledgerkit_sandbox_messages_total",
		Help: "Messages delivered by the sandbox chain, by outcome.",
	},
	[]string{
		"result",
	},
)

const (
	resultProcessed = "processed"
	resultFailed    = "failed"
	resultDropped   = "dropped"
	resultBounced   = "bounced"
)
