package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletdemo",
		Subsystem: "collector",
		Name:      "transactions_created_total",
		Help:      "Total transaction records stored",
	})

	createRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletdemo",
		Subsystem: "collector",
		Name:      "create_rejected_total",
		Help:      "Total create requests rejected by validation",
	})

	storeFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletdemo",
		Subsystem: "collector",
		Name:      "store_faults_total",
		Help:      "Total backing store faults by operation",
	}, []string{"op"})
)
