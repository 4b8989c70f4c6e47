package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain_expiry/internal/dateformat"
	"domain_expiry/internal/logger"
	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/status"
	"domain_expiry/internal/theme"
)

type statusLine struct {
	kind StatusKind
	text string
}

// fakeTarget records everything rendered into it
type fakeTarget struct {
	mu          sync.Mutex
	statuses    []statusLine
	rows        []Row
	renders     int
	errMessage  string
	errDetail   string
	lastUpdated string
	countdown   string
	mode        string
	activeTheme string
	activeFmt   string
}

func (f *fakeTarget) SetTheme(mode string)       { f.mu.Lock(); f.mode = mode; f.mu.Unlock() }
func (f *fakeTarget) SetActiveTheme(pref string) { f.mu.Lock(); f.activeTheme = pref; f.mu.Unlock() }
func (f *fakeTarget) SetStatus(kind StatusKind, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, statusLine{kind, text})
}
func (f *fakeTarget) RenderRows(rows []Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
	f.renders++
	f.errMessage, f.errDetail = "", ""
}
func (f *fakeTarget) RenderError(message, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = nil
	f.errMessage, f.errDetail = message, detail
}
func (f *fakeTarget) SetLastUpdated(text string)        { f.mu.Lock(); f.lastUpdated = text; f.mu.Unlock() }
func (f *fakeTarget) SetCountdown(text string)          { f.mu.Lock(); f.countdown = text; f.mu.Unlock() }
func (f *fakeTarget) SetActiveDateFormat(format string) { f.mu.Lock(); f.activeFmt = format; f.mu.Unlock() }

func (f *fakeTarget) lastStatus() statusLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return statusLine{}
	}
	return f.statuses[len(f.statuses)-1]
}

// renderState is a copy of what the target currently shows
type renderState struct {
	rows        []Row
	renders     int
	errMessage  string
	errDetail   string
	lastUpdated string
	countdown   string
	mode        string
	activeTheme string
	activeFmt   string
}

func (f *fakeTarget) snapshot() renderState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return renderState{
		rows:        append([]Row(nil), f.rows...),
		renders:     f.renders,
		errMessage:  f.errMessage,
		errDetail:   f.errDetail,
		lastUpdated: f.lastUpdated,
		countdown:   f.countdown,
		mode:        f.mode,
		activeTheme: f.activeTheme,
		activeFmt:   f.activeFmt,
	}
}

// fakeFetcher returns the configured result
type fakeFetcher struct {
	mu    sync.Mutex
	resp  *model.StatusResponse
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*model.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

func (f *fakeFetcher) set(resp *model.StatusResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resp, f.err = resp, err
}

func sampleResponse() *model.StatusResponse {
	return &model.StatusResponse{
		Domains: []model.DomainStatus{
			{Domain: "example.com", Expires: model.StrPtr("2026-12-01T00:00:00Z"), DaysLeft: model.IntPtr(43)},
			{Domain: "example.org", Expires: model.StrPtr("2027-09-01T00:00:00Z"), DaysLeft: model.IntPtr(317)},
		},
		Updated: "2026-10-19T08:00:00Z",
	}
}

func newTestDashboard(t *testing.T, fetcher Fetcher, interval time.Duration) (*Dashboard, *fakeTarget, prefs.Store) {
	t.Helper()
	target := &fakeTarget{}
	store := prefs.NewMemoryProvider().Store("tab")
	d := New(Options{
		APIURL:     "http://expiry.local:8088",
		Interval:   interval,
		Thresholds: DefaultThresholds,
		Fetcher:    fetcher,
		Store:      store,
		Target:     target,
		Formatter:  dateformat.New("en-US", time.UTC),
		Logger:     logger.Discard(),
	})
	t.Cleanup(d.Stop)
	return d, target, store
}

func TestDashboard_RefreshSuccess(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, target, _ := newTestDashboard(t, fetcher, time.Hour)

	require.NoError(t, d.Refresh())

	snap := target.snapshot()
	require.Len(t, snap.rows, 2)
	assert.Equal(t, "example.com", snap.rows[0].Domain)
	assert.Equal(t, TierCritical, snap.rows[0].Tier)
	assert.Equal(t, "12/1/2026", snap.rows[0].Expires)
	assert.Equal(t, TierHealthy, snap.rows[1].Tier)
	assert.Equal(t, statusLine{StatusSuccess, "Monitoring 2 domain(s)"}, target.lastStatus())
	assert.Equal(t, "Last updated: 10/19/2026, 8:00:00 AM", snap.lastUpdated)
	assert.True(t, d.Scheduler().CountdownRunning())

	target.mu.Lock()
	assert.Equal(t, statusLine{StatusLoading, LoadingText}, target.statuses[0])
	target.mu.Unlock()
}

func TestDashboard_NoDomains(t *testing.T) {
	fetcher := &fakeFetcher{resp: &model.StatusResponse{Domains: []model.DomainStatus{}, Updated: "2026-10-19T08:00:00Z"}}
	d, target, _ := newTestDashboard(t, fetcher, time.Hour)

	require.NoError(t, d.Refresh())

	snap := target.snapshot()
	assert.Empty(t, snap.rows)
	assert.Equal(t, 1, snap.renders, "previous rows are cleared")
	assert.Equal(t, statusLine{StatusWarning, NoDomainsText}, target.lastStatus())
}

func TestDashboard_FailureKeepsTimer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := status.NewClient(&status.Config{BaseURL: srv.URL, Logger: logger.Discard()})
	d, target, _ := newTestDashboard(t, client, time.Hour)
	d.apiURL = srv.URL

	err := d.Refresh()
	var httpErr *status.HTTPError
	require.True(t, errors.As(err, &httpErr))

	snap := target.snapshot()
	assert.Equal(t, ErrorMessage, snap.errMessage)
	assert.Contains(t, snap.errDetail, srv.URL)
	st := target.lastStatus()
	assert.Equal(t, StatusError, st.kind)
	assert.Equal(t, "Error: API returned 500: Internal Server Error", st.text)

	assert.True(t, d.Scheduler().RefreshRunning(), "recurring timer survives a failed fetch")
	assert.True(t, d.Scheduler().CountdownRunning())
}

func TestDashboard_AutoRetryAfterFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	d, target, _ := newTestDashboard(t, fetcher, 20*time.Millisecond)

	require.NoError(t, d.Start())
	assert.Eventually(t, func() bool { return target.snapshot().errMessage != "" }, time.Second, 5*time.Millisecond)

	fetcher.set(sampleResponse(), nil)
	assert.Eventually(t, func() bool { return len(target.snapshot().rows) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDashboard_ManualRefreshResetsCountdown(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, _, _ := newTestDashboard(t, fetcher, time.Hour)

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	now := base
	var nowMu sync.Mutex
	d.scheduler.now = func() time.Time { nowMu.Lock(); defer nowMu.Unlock(); return now }

	require.NoError(t, d.Refresh())
	assert.Equal(t, base.Add(time.Hour), d.Scheduler().NextRefresh())

	nowMu.Lock()
	now = base.Add(40 * time.Minute)
	nowMu.Unlock()

	require.NoError(t, d.Refresh())
	assert.Equal(t, base.Add(100*time.Minute), d.Scheduler().NextRefresh(), "fresh window, not leftover time")
}

func TestDashboard_ManualRefreshFailureRestartsCountdown(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("timeout")}
	d, _, _ := newTestDashboard(t, fetcher, time.Hour)

	require.Error(t, d.Refresh())
	assert.True(t, d.Scheduler().CountdownRunning())
	assert.False(t, d.Scheduler().NextRefresh().IsZero())
}

// gatedFetcher blocks each call until released, returning per-call responses
type gatedFetcher struct {
	started chan int
	release []chan struct{}
	resps   []*model.StatusResponse
	mu      sync.Mutex
	n       int
}

func (g *gatedFetcher) Fetch(ctx context.Context) (*model.StatusResponse, error) {
	g.mu.Lock()
	i := g.n
	g.n++
	g.mu.Unlock()

	g.started <- i
	select {
	case <-g.release[i]:
		return g.resps[i], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestDashboard_LatestRequestWins(t *testing.T) {
	older := &model.StatusResponse{Domains: []model.DomainStatus{{Domain: "old.example"}}}
	newer := &model.StatusResponse{Domains: []model.DomainStatus{{Domain: "new.example"}}}
	g := &gatedFetcher{
		started: make(chan int, 2),
		release: []chan struct{}{make(chan struct{}), make(chan struct{})},
		resps:   []*model.StatusResponse{older, newer},
	}
	d, target, _ := newTestDashboard(t, g, time.Hour)

	firstDone := make(chan error, 1)
	go func() { firstDone <- d.Refresh() }()
	<-g.started

	secondDone := make(chan error, 1)
	go func() { secondDone <- d.Refresh() }()
	<-g.started

	// newer resolves first, older resolves last and must be discarded
	close(g.release[1])
	require.NoError(t, <-secondDone)
	close(g.release[0])
	require.NoError(t, <-firstDone)

	snap := target.snapshot()
	require.Len(t, snap.rows, 1)
	assert.Equal(t, "new.example", snap.rows[0].Domain)
	assert.Equal(t, 1, snap.renders)
}

func TestDashboard_SetDateFormatRerenders(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, target, store := newTestDashboard(t, fetcher, time.Hour)
	ctx := context.Background()

	require.NoError(t, d.Refresh())
	require.NoError(t, d.SetDateFormat(ctx, model.DateFormatISO))

	snap := target.snapshot()
	assert.Equal(t, "2026-12-01", snap.rows[0].Expires)
	assert.Equal(t, model.DateFormatISO, snap.activeFmt)

	v, _, _ := store.Get(ctx, model.PrefKeyDateFormat)
	assert.Equal(t, model.DateFormatISO, v)

	assert.ErrorIs(t, d.SetDateFormat(ctx, "YY.MM"), ErrInvalidDateFormat)
}

func TestDashboard_UnknownStoredDateFormatFallsBack(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, target, store := newTestDashboard(t, fetcher, time.Hour)
	require.NoError(t, store.Set(context.Background(), model.PrefKeyDateFormat, "QQ/QQ"))

	require.NoError(t, d.Refresh())
	assert.Equal(t, "12/01/2026", target.snapshot().rows[0].Expires)
}

func TestDashboard_StartAppliesPreferences(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, target, store := newTestDashboard(t, fetcher, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, model.PrefKeyTheme, model.ThemeDark))
	require.NoError(t, store.Set(ctx, model.PrefKeyDateFormat, model.DateFormatDMYDash))

	require.NoError(t, d.Start())
	assert.Eventually(t, func() bool { return len(target.snapshot().rows) == 2 }, time.Second, 5*time.Millisecond)

	snap := target.snapshot()
	assert.Equal(t, "dark", snap.mode)
	assert.Equal(t, model.ThemeDark, snap.activeTheme)
	assert.Equal(t, model.DateFormatDMYDash, snap.activeFmt)
	assert.Equal(t, "01-12-2026", snap.rows[0].Expires)
	assert.True(t, d.Scheduler().RefreshRunning())
}

func TestDashboard_SystemTheme(t *testing.T) {
	d, target, _ := newTestDashboard(t, &fakeFetcher{resp: sampleResponse()}, time.Hour)
	ctx := context.Background()

	require.NoError(t, d.Start())
	assert.Equal(t, "light", target.snapshot().mode)

	require.NoError(t, d.SystemSchemeChanged(ctx, true))
	assert.Equal(t, "dark", target.snapshot().mode)
	assert.Equal(t, "dark", d.ThemeMode(ctx))
}

func TestDashboard_Stop(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, _, _ := newTestDashboard(t, fetcher, 10*time.Millisecond)

	require.NoError(t, d.Start())
	d.Stop()

	assert.False(t, d.Scheduler().RefreshRunning())
	assert.False(t, d.Scheduler().CountdownRunning())
	assert.ErrorIs(t, d.Refresh(), ErrStopped)
	assert.ErrorIs(t, d.Start(), ErrStopped)

	fetcher.mu.Lock()
	calls := fetcher.calls
	fetcher.mu.Unlock()
	time.Sleep(40 * time.Millisecond)
	fetcher.mu.Lock()
	assert.Equal(t, calls, fetcher.calls, "no fetches after stop")
	fetcher.mu.Unlock()
}

func TestDashboard_ErrorBlockNamesAPI(t *testing.T) {
	d, target, _ := newTestDashboard(t, &fakeFetcher{err: errors.New("dial tcp: refused")}, time.Hour)

	_ = d.Refresh()
	snap := target.snapshot()
	assert.True(t, strings.HasSuffix(snap.errDetail, "http://expiry.local:8088"))
	assert.Equal(t, "Error: dial tcp: refused", target.lastStatus().text)
}

func TestDashboard_RenderOnce(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	d, target, store := newTestDashboard(t, fetcher, time.Hour)
	require.NoError(t, store.Set(context.Background(), model.PrefKeyDateFormat, model.DateFormatDMYSlash))

	require.NoError(t, d.RenderOnce())

	snap := target.snapshot()
	require.Len(t, snap.rows, 2)
	assert.Equal(t, "01/12/2026", snap.rows[0].Expires)
	assert.Equal(t, model.DateFormatDMYSlash, snap.activeFmt)
	assert.Equal(t, theme.ModeLight, snap.mode)
	assert.False(t, d.Scheduler().CountdownRunning())
	assert.False(t, d.Scheduler().RefreshRunning())
	assert.Equal(t, 1, fetcher.calls)
}
