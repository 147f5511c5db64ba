// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "denied" (allow-list), or "invalid" (credentials)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// AssignmentsTotal counts user identities added to project assignment sets.
// Re-assigning an already-assigned user still increments; the counter tracks
// requests, not set growth.
var AssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Total number of user ids submitted through the assignment workflow.",
	},
)

// StatusChangesTotal counts status transitions applied to projects.
// Label:
//   - status: the new project status
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of project status changes, by target status.",
	},
	[]string{"status"},
)

// AttachmentsUploadedTotal counts attachments appended to projects.
var AttachmentsUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachments_uploaded_total",
		Help:      "Total number of attachments uploaded.",
	},
)

// UsersDeletedTotal counts user deletions (cascade included).
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)
