// Package metrics holds the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InsufficientStockRejections counts contract creations refused because
	// an equipment type had fewer available units than requested.
	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_insufficient_stock_rejections_total",
		Help: "Contract creations rejected for lack of available stock.",
	})

	// NotificationsGenerated counts notifications created by the automatic
	// generator, labelled by kind.
	NotificationsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_notifications_generated_total",
		Help: "Notifications created by the automatic generator.",
	}, []string{"kind"})

	// StockMismatchesFound counts equipment types whose stored availability
	// disagreed with the recomputed value during reconciliation.
	StockMismatchesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_stock_mismatches_found_total",
		Help: "Equipment types with a stored availability that disagreed with open allocations.",
	})

	// ContractsCreated counts successfully created rental contracts.
	ContractsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_contracts_created_total",
		Help: "Rental contracts created.",
	})

	// OverdueRemindersSent counts reminder emails handed to the mail provider.
	OverdueRemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_overdue_reminders_sent_total",
		Help: "Overdue reminder emails accepted by the mail provider.",
	})
)
