package ws

import (
	"domain_expiry/internal/dashboard"
)

// Client to server events
const (
	EventRefresh       = "refresh"
	EventThemeSet      = "theme:set"
	EventDateFormatSet = "dateFormat:set"
	EventSystemScheme  = "system:scheme"
)

// Server to client events
const (
	EventStatus      = "status"
	EventRows        = "rows"
	EventTableError  = "table:error"
	EventLastUpdated = "lastUpdated"
	EventCountdown   = "countdown"
	EventTheme       = "theme"
	EventDateFormat  = "dateFormat"
	EventPrefsError  = "prefs:error"
)

// Handshake parameters
const (
	SchemeParam      = "scheme"
	SchemeHintHeader = "Sec-CH-Prefers-Color-Scheme"
)

// StatusPayload is sent with EventStatus
type StatusPayload struct {
	Kind dashboard.StatusKind `json:"kind"`
	Text string               `json:"text"`
}

// TableErrorPayload is sent with EventTableError
type TableErrorPayload struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// ThemePayload is sent with EventTheme
type ThemePayload struct {
	Mode   string `json:"mode"`
	Active string `json:"active"`
}

// PrefsErrorPayload is sent with EventPrefsError
type PrefsErrorPayload struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// emitter is the sending half of a Socket.IO connection
type emitter interface {
	Emit(event string, v ...interface{})
}

// socketTarget renders a session as Socket.IO events.
// The session serializes calls, so the theme fields need no lock.
type socketTarget struct {
	conn   emitter
	mode   string
	active string
}

func newSocketTarget(conn emitter) *socketTarget {
	return &socketTarget{conn: conn}
}

func (t *socketTarget) SetTheme(mode string) {
	t.mode = mode
	t.emitTheme()
}

func (t *socketTarget) SetActiveTheme(pref string) {
	t.active = pref
	t.emitTheme()
}

func (t *socketTarget) emitTheme() {
	t.conn.Emit(EventTheme, ThemePayload{Mode: t.mode, Active: t.active})
}

func (t *socketTarget) SetStatus(kind dashboard.StatusKind, text string) {
	t.conn.Emit(EventStatus, StatusPayload{Kind: kind, Text: text})
}

func (t *socketTarget) RenderRows(rows []dashboard.Row) {
	if rows == nil {
		rows = []dashboard.Row{}
	}
	t.conn.Emit(EventRows, rows)
}

func (t *socketTarget) RenderError(message, detail string) {
	t.conn.Emit(EventTableError, TableErrorPayload{Message: message, Detail: detail})
}

func (t *socketTarget) SetLastUpdated(text string) {
	t.conn.Emit(EventLastUpdated, text)
}

func (t *socketTarget) SetCountdown(text string) {
	t.conn.Emit(EventCountdown, text)
}

func (t *socketTarget) SetActiveDateFormat(format string) {
	t.conn.Emit(EventDateFormat, format)
}
