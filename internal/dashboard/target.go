package dashboard

import (
	"domain_expiry/internal/theme"
)

// StatusKind classifies the status line
type StatusKind string

// Status line kinds
const (
	StatusLoading StatusKind = "loading"
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Target is where a session renders. Calls are serialized per session.
type Target interface {
	theme.Target

	SetStatus(kind StatusKind, text string)
	// RenderRows replaces every row; an empty slice clears the table
	RenderRows(rows []Row)
	// RenderError replaces the rows with an inline error block
	RenderError(message, detail string)
	SetLastUpdated(text string)
	SetCountdown(text string)
	SetActiveDateFormat(format string)
}
