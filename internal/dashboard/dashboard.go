// Package dashboard implements one dashboard session: the polling loop, the
// countdown and rendering of the expiry table into a Target.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"domain_expiry/internal/dateformat"
	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/theme"
)

// ErrInvalidDateFormat is returned when selecting a format outside model.DateFormats
var ErrInvalidDateFormat = errors.New("invalid date format")

// ErrStopped is returned by operations on a stopped session
var ErrStopped = errors.New("dashboard stopped")

// Status line texts
const (
	LoadingText   = "Loading…"
	NoDomainsText = "No domains found"
	ErrorMessage  = "Unable to connect to API"
)

// Fetcher retrieves the current status snapshot
type Fetcher interface {
	Fetch(ctx context.Context) (*model.StatusResponse, error)
}

// Options configures a Dashboard
type Options struct {
	APIURL     string
	Interval   time.Duration
	Thresholds Thresholds
	Fetcher    Fetcher
	Store      prefs.Store
	Target     Target
	Formatter  *dateformat.Formatter
	SystemDark bool
	Logger     *logrus.Entry
}

// Dashboard is a single session. Target calls are serialized on mu.
type Dashboard struct {
	apiURL     string
	thresholds Thresholds
	fetcher    Fetcher
	store      prefs.Store
	target     Target
	formatter  *dateformat.Formatter
	logger     *logrus.Entry

	theme     *theme.Controller
	scheduler *Scheduler

	ctx    context.Context
	cancel context.CancelFunc
	seq    atomic.Uint64
	wg     sync.WaitGroup

	mu      sync.Mutex
	stopped bool
	last    *model.StatusResponse
}

// New creates a session; call Start to begin polling
func New(opts Options) *Dashboard {
	if opts.Formatter == nil {
		opts.Formatter = dateformat.New("", nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	logger := opts.Logger.WithField("component", "dashboard")

	d := &Dashboard{
		apiURL:     opts.APIURL,
		thresholds: opts.Thresholds,
		fetcher:    opts.Fetcher,
		store:      opts.Store,
		target:     opts.Target,
		formatter:  opts.Formatter,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
	d.theme = theme.NewController(opts.Store, &lockedThemeTarget{d: d}, opts.SystemDark, logger)
	d.scheduler = NewScheduler(opts.Interval, d.autoRefresh, d.showCountdown)
	return d
}

// Scheduler exposes the session timers
func (d *Dashboard) Scheduler() *Scheduler {
	return d.scheduler
}

// Start applies preferences, runs the first fetch and starts the refresh timer
func (d *Dashboard) Start() error {
	d.applyPreferences()

	if !d.goTracked(func() { _, _ = d.fetch("initial", true) }) {
		return ErrStopped
	}
	d.scheduler.StartAutoRefresh()
	d.logger.WithField("interval", d.scheduler.Interval()).Info("Auto-refresh enabled")
	return nil
}

// RenderOnce applies preferences and renders a single fetch without starting timers
func (d *Dashboard) RenderOnce() error {
	if d.isStopped() {
		return ErrStopped
	}
	d.applyPreferences()
	_, err := d.fetch("once", false)
	return err
}

func (d *Dashboard) applyPreferences() {
	if err := d.theme.Init(d.ctx); err != nil {
		d.logger.WithError(err).Warn("Theme preference unavailable")
	}

	format := d.dateFormat()
	d.mu.Lock()
	d.target.SetActiveDateFormat(format)
	d.mu.Unlock()
}

// Stop cancels timers and in-flight fetches and waits for them to finish
func (d *Dashboard) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	d.cancel()
	d.scheduler.Stop()
	d.wg.Wait()
}

// Refresh runs a manual refresh and returns when it completes.
// Both timers restart so the countdown matches the next automatic refresh.
func (d *Dashboard) Refresh() error {
	if d.isStopped() {
		return ErrStopped
	}
	d.logger.Info("Manual refresh triggered")

	d.scheduler.StopCountdown()
	d.scheduler.StartAutoRefresh()

	applied, err := d.fetch("manual", true)
	if applied && err != nil {
		d.scheduler.StartCountdown()
	}
	return err
}

// RefreshAsync runs Refresh on a session goroutine
func (d *Dashboard) RefreshAsync() {
	d.goTracked(func() { _ = d.Refresh() })
}

// SetTheme stores and applies a theme selection
func (d *Dashboard) SetTheme(ctx context.Context, pref string) error {
	return d.theme.Set(ctx, pref)
}

// SystemSchemeChanged forwards an OS color-scheme change
func (d *Dashboard) SystemSchemeChanged(ctx context.Context, dark bool) error {
	return d.theme.SystemChanged(ctx, dark)
}

// ThemeMode returns the resolved visual mode
func (d *Dashboard) ThemeMode(ctx context.Context) string {
	return d.theme.Mode(ctx)
}

// SetDateFormat stores a date format and re-renders the last snapshot
func (d *Dashboard) SetDateFormat(ctx context.Context, format string) error {
	if !model.IsKnownDateFormat(format) {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, format)
	}
	if err := d.store.Set(ctx, model.PrefKeyDateFormat, format); err != nil {
		return fmt.Errorf("failed to store date format: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.target.SetActiveDateFormat(format)
	if d.last != nil && len(d.last.Domains) > 0 {
		d.target.RenderRows(BuildRows(d.last.Domains, d.thresholds, d.formatter, format))
	}
	return nil
}

func (d *Dashboard) autoRefresh() {
	d.logger.Debug("Auto-refreshing domain data...")
	_, _ = d.fetch("auto", true)
}

// fetch requests a snapshot and renders it when it is still the latest request.
// applied is false when the result was discarded.
func (d *Dashboard) fetch(trigger string, countdown bool) (applied bool, err error) {
	seq := d.seq.Add(1)
	logger := d.logger.WithFields(logrus.Fields{"trigger": trigger, "seq": seq})

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return false, ErrStopped
	}
	d.target.SetStatus(StatusLoading, LoadingText)
	d.mu.Unlock()

	resp, err := d.fetcher.Fetch(d.ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false, ErrStopped
	}
	if latest := d.seq.Load(); seq != latest {
		logger.WithField("latest", latest).Debug("Discarding stale response")
		return false, nil
	}

	if err != nil {
		logger.WithError(err).Error("Error fetching domain data")
		d.target.SetStatus(StatusError, "Error: "+err.Error())
		d.target.RenderError(ErrorMessage, "Check that the API is running at "+d.apiURL)
		return true, err
	}

	d.last = resp
	d.renderLocked(resp)
	if countdown {
		d.scheduler.StartCountdown()
	}
	return true, nil
}

func (d *Dashboard) renderLocked(resp *model.StatusResponse) {
	if len(resp.Domains) > 0 {
		rows := BuildRows(resp.Domains, d.thresholds, d.formatter, d.dateFormat())
		d.target.RenderRows(rows)
		d.target.SetStatus(StatusSuccess, fmt.Sprintf("Monitoring %d domain(s)", len(rows)))
	} else {
		d.target.RenderRows([]Row{})
		d.target.SetStatus(StatusWarning, NoDomainsText)
	}

	if resp.Updated != "" {
		d.target.SetLastUpdated("Last updated: " + d.formatter.FormatDateTime(resp.Updated))
	}
}

func (d *Dashboard) dateFormat() string {
	format, err := prefs.GetOr(d.ctx, d.store, model.PrefKeyDateFormat, model.DefaultDateFormat)
	if err != nil {
		d.logger.WithError(err).Warn("Failed to read date format preference")
	}
	return format
}

func (d *Dashboard) showCountdown(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.target.SetCountdown(text)
	}
}

func (d *Dashboard) goTracked(f func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		f()
	}()
	return true
}

func (d *Dashboard) isStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// lockedThemeTarget serializes theme updates with the rest of the rendering
type lockedThemeTarget struct {
	d *Dashboard
}

func (t *lockedThemeTarget) SetTheme(mode string) {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.target.SetTheme(mode)
}

func (t *lockedThemeTarget) SetActiveTheme(pref string) {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.target.SetActiveTheme(pref)
}
