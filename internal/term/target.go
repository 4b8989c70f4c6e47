// Package term renders a dashboard session to a terminal.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/model"
	"domain_expiry/internal/theme"
)

const clearScreen = "\033[H\033[2J"

// Options configures a terminal Target
type Options struct {
	// Live redraws the whole screen on every change
	Live   bool
	Colors bool
}

// Target implements dashboard.Target on an io.Writer
type Target struct {
	mu   sync.Mutex
	out  io.Writer
	opts Options

	mode        string
	activeTheme string
	dateFormat  string
	statusKind  dashboard.StatusKind
	statusText  string
	rows        []dashboard.Row
	errMessage  string
	errDetail   string
	lastUpdated string
	countdown   string
}

// NewTarget creates a terminal target writing to out
func NewTarget(out io.Writer, opts Options) *Target {
	return &Target{
		out:         out,
		opts:        opts,
		mode:        theme.ModeLight,
		activeTheme: model.DefaultTheme,
		dateFormat:  model.DefaultDateFormat,
	}
}

func (t *Target) SetTheme(mode string) {
	t.update(func() { t.mode = mode })
}

func (t *Target) SetActiveTheme(pref string) {
	t.update(func() { t.activeTheme = pref })
}

func (t *Target) SetStatus(kind dashboard.StatusKind, text string) {
	t.update(func() { t.statusKind, t.statusText = kind, text })
}

func (t *Target) RenderRows(rows []dashboard.Row) {
	t.update(func() {
		t.rows = rows
		t.errMessage, t.errDetail = "", ""
	})
}

func (t *Target) RenderError(message, detail string) {
	t.update(func() {
		t.rows = nil
		t.errMessage, t.errDetail = message, detail
	})
}

func (t *Target) SetLastUpdated(text string) {
	t.update(func() { t.lastUpdated = text })
}

func (t *Target) SetCountdown(text string) {
	t.update(func() { t.countdown = text })
}

func (t *Target) SetActiveDateFormat(format string) {
	t.update(func() { t.dateFormat = format })
}

func (t *Target) update(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f()
	if t.opts.Live {
		fmt.Fprint(t.out, clearScreen)
		t.renderLocked(t.out)
	}
}

// Render writes the current frame once
func (t *Target) Render() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderLocked(t.out)
}

func (t *Target) renderLocked(w io.Writer) {
	p := newPalette(t.mode, t.opts.Colors)

	p.title.Fprint(w, "Domain Expiry Dashboard")
	p.muted.Fprintf(w, "  theme: %s (%s)  date: %s\n", t.activeTheme, t.mode, t.dateFormat)

	line := []string{p.status(t.statusKind).Sprint(t.statusText)}
	if t.lastUpdated != "" {
		line = append(line, p.muted.Sprint(t.lastUpdated))
	}
	if t.countdown != "" {
		line = append(line, p.accent.Sprint("Next refresh: "+t.countdown))
	}
	fmt.Fprintln(w, strings.Join(line, "   "))
	fmt.Fprintln(w)

	switch {
	case t.errMessage != "":
		p.critical.Fprintln(w, t.errMessage)
		p.muted.Fprintln(w, t.errDetail)
	case len(t.rows) > 0:
		t.renderTable(w, p)
	}

	if t.opts.Live {
		fmt.Fprintln(w)
		p.muted.Fprintln(w, "r: refresh   t: next theme   d: next date format   q: quit (then enter)")
	}
}

func (t *Target) renderTable(w io.Writer, p palette) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	table.Header(tableHeader)
	table.Bulk(tableRows(t.rows, p))
	table.Render()

	// error details of rows without days, shown as hover text on the page
	for _, r := range t.rows {
		if r.DaysTitle != "" {
			p.muted.Fprintf(w, "%s: %s\n", r.Domain, r.DaysTitle)
		}
	}
}

// tableHeader names the columns of the expiry table
var tableHeader = []string{"Domain", "Expires", "Days Left", "Status"}

// tableRows renders one cell per column for every row
func tableRows(rows []dashboard.Row, p palette) [][]string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Domain,
			r.Expires,
			p.tier(r.Tier).Sprint(r.Days),
			r.Icon,
		})
	}
	return data
}
