package ws

import (
	"context"
	"errors"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/sirupsen/logrus"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/dateformat"
	"domain_expiry/internal/model"
	"domain_expiry/internal/theme"
)

// prefsTimeout bounds a preference write triggered by a client event
const prefsTimeout = 5 * time.Second

// session is stored as the connection context
type session struct {
	clientID string
	dash     *dashboard.Dashboard
	logger   *logrus.Entry
}

// onConnect starts a dashboard session for the connection
func (s *Server) onConnect(c socketio.Conn) error {
	clientID, known := clientIDOf(c)
	logger := s.logger.WithFields(logrus.Fields{
		"sid":    c.ID(),
		"client": clientID,
	})
	if !known {
		logger.Warn("Connection without client id, preferences will not persist across reloads")
	}

	dash := dashboard.New(dashboard.Options{
		APIURL:     s.opts.APIURL,
		Interval:   s.opts.Interval,
		Thresholds: s.opts.Thresholds,
		Fetcher:    s.opts.Fetcher,
		Store:      s.opts.Prefs.Store(clientID),
		Target:     newSocketTarget(c),
		Formatter:  dateformat.New(c.RemoteHeader().Get("Accept-Language"), s.opts.Location),
		SystemDark: systemDarkOf(c),
		Logger:     logger,
	})

	sess := &session{clientID: clientID, dash: dash, logger: logger}
	c.SetContext(sess)
	s.track(c.ID(), sess)

	if err := dash.Start(); err != nil {
		s.untrack(c.ID())
		return err
	}

	logger.Info("Client connected")
	return nil
}

// onDisconnect stops the session timers and in-flight fetches
func (s *Server) onDisconnect(c socketio.Conn, reason string) {
	sess, ok := s.untrack(c.ID())
	if !ok {
		return
	}
	sess.dash.Stop()
	sess.logger.WithField("reason", reason).Info("Client disconnected")
}

func (s *Server) handleRefresh(c socketio.Conn) {
	sess := sessionOf(c)
	if sess == nil {
		return
	}
	sess.dash.RefreshAsync()
}

func (s *Server) handleThemeSet(c socketio.Conn, pref string) {
	sess := sessionOf(c)
	if sess == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
	defer cancel()

	if err := sess.dash.SetTheme(ctx, pref); err != nil {
		reportPrefsError(c, sess.logger, model.PrefKeyTheme, pref, err)
	}
}

func (s *Server) handleDateFormatSet(c socketio.Conn, format string) {
	sess := sessionOf(c)
	if sess == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
	defer cancel()

	if err := sess.dash.SetDateFormat(ctx, format); err != nil {
		reportPrefsError(c, sess.logger, model.PrefKeyDateFormat, format, err)
	}
}

func (s *Server) handleSystemScheme(c socketio.Conn, scheme string) {
	sess := sessionOf(c)
	if sess == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), prefsTimeout)
	defer cancel()

	if err := sess.dash.SystemSchemeChanged(ctx, theme.SchemeIsDark(scheme)); err != nil {
		sess.logger.WithError(err).Warn("Failed to re-apply system theme")
	}
}

func sessionOf(c socketio.Conn) *session {
	sess, _ := c.Context().(*session)
	return sess
}

func reportPrefsError(c emitter, logger *logrus.Entry, key, value string, err error) {
	msg := "failed to save preference"
	if errors.Is(err, theme.ErrInvalidTheme) || errors.Is(err, dashboard.ErrInvalidDateFormat) {
		msg = err.Error()
		logger.WithField(key, value).Warn("Rejected preference")
	} else {
		logger.WithError(err).WithField("key", key).Error("Failed to store preference")
	}
	c.Emit(EventPrefsError, PrefsErrorPayload{Key: key, Value: value, Message: msg})
}
