// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	FieldEvent         = "event"
	FieldComponent     = "component"
	FieldCorrelationID = "correlation_id"

	// Configuration fields
	FieldPath         = "path"
	FieldSite         = "site"
	FieldBase         = "base"
	FieldIntegrations = "integrations"
	FieldChanged      = "changed"

	FieldDurationMS = "duration_ms"
)
