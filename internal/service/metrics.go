package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on the default registry so the /metrics endpoint
// picks them up alongside the HTTP metrics.
var (
	itemsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_content_items_upserted_total",
			Help: "Total number of content items created or updated, partitioned by content type.",
		},
		[]string{"content_type"},
	)
	itemsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showcase_content_items_deleted_total",
			Help: "Total number of content items deleted.",
		},
	)
	itemValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_content_item_validation_failures_total",
			Help: "Total number of item upserts rejected by validation, partitioned by content type.",
		},
		[]string{"content_type"},
	)
	documentItemsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showcase_document_items_dropped_total",
			Help: "Total number of stored items skipped on decode because of an unknown content type.",
		},
	)
)
