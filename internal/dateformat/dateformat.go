// Package dateformat renders ISO-8601 timestamps for the expiry table.
package dateformat

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"domain_expiry/internal/model"
)

// NotAvailable is rendered for missing or unparseable timestamps
const NotAvailable = "N/A"

// fixed formats, applied to the UTC calendar date
var layouts = map[string]string{
	model.DateFormatDMYSlash: "02/01/2006",
	model.DateFormatDMYDash:  "02-01-2006",
	model.DateFormatMDYSlash: "01/02/2006",
	model.DateFormatMDYDash:  "01-02-2006",
	model.DateFormatISO:      "2006-01-02",
}

const fallbackLayout = "01/02/2006"

// accepted input layouts, tried in order
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse parses an ISO-8601 timestamp. Timestamps without an offset are read as UTC.
func Parse(iso string) (time.Time, bool) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Formatter formats dates for one viewer locale and display time zone
type Formatter struct {
	locale localePattern
	tz     *time.Location
}

// New creates a Formatter for an Accept-Language header value.
// A nil tz renders date-times in time.Local.
func New(acceptLanguage string, tz *time.Location) *Formatter {
	if tz == nil {
		tz = time.Local
	}
	return &Formatter{locale: matchLocale(acceptLanguage), tz: tz}
}

var defaultFormatter = New("", time.UTC)

// Format formats iso using the default (en-US) locale for "auto"
func Format(iso, format string) string {
	return defaultFormatter.Format(iso, format)
}

// Locale returns the matched locale tag
func (f *Formatter) Locale() language.Tag {
	return f.locale.tag
}

// Format converts an ISO timestamp into a display date.
// The calendar date is always taken in UTC so a timezone shift cannot move the day.
func (f *Formatter) Format(iso, format string) string {
	t, ok := Parse(iso)
	if !ok {
		return NotAvailable
	}
	t = t.UTC()

	if format == model.DateFormatAuto {
		return f.locale.date(t)
	}
	layout, ok := layouts[format]
	if !ok {
		layout = fallbackLayout
	}
	return t.Format(layout)
}

// FormatDateTime renders an absolute locale-aware date and time in the display time zone
func (f *Formatter) FormatDateTime(iso string) string {
	t, ok := Parse(iso)
	if !ok {
		return NotAvailable
	}
	t = t.In(f.tz)
	return f.locale.date(t) + f.locale.dateTimeSep + f.locale.clock(t)
}

type localePattern struct {
	tag         language.Tag
	order       string // "MDY", "DMY" or "YMD"
	sep         string
	pad         bool
	suffix      string
	dateTimeSep string
	hour12      bool
}

func (p localePattern) date(t time.Time) string {
	y := fmt.Sprintf("%d", t.Year())
	m := fmt.Sprintf("%d", int(t.Month()))
	d := fmt.Sprintf("%d", t.Day())
	if p.pad {
		m = fmt.Sprintf("%02d", int(t.Month()))
		d = fmt.Sprintf("%02d", t.Day())
	}

	var parts []string
	switch p.order {
	case "DMY":
		parts = []string{d, m, y}
	case "YMD":
		parts = []string{y, m, d}
	default:
		parts = []string{m, d, y}
	}
	return strings.Join(parts, p.sep) + p.suffix
}

func (p localePattern) clock(t time.Time) string {
	if p.hour12 {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

// patterns[0] is the fallback
var patterns = []localePattern{
	{tag: language.AmericanEnglish, order: "MDY", sep: "/", dateTimeSep: ", ", hour12: true},
	{tag: language.BritishEnglish, order: "DMY", sep: "/", pad: true, dateTimeSep: ", "},
	{tag: language.German, order: "DMY", sep: ".", dateTimeSep: ", "},
	{tag: language.French, order: "DMY", sep: "/", pad: true, dateTimeSep: " "},
	{tag: language.Spanish, order: "DMY", sep: "/", dateTimeSep: ", "},
	{tag: language.Italian, order: "DMY", sep: "/", dateTimeSep: ", "},
	{tag: language.Portuguese, order: "DMY", sep: "/", pad: true, dateTimeSep: ", "},
	{tag: language.Dutch, order: "DMY", sep: "-", dateTimeSep: ", "},
	{tag: language.Russian, order: "DMY", sep: ".", pad: true, dateTimeSep: ", "},
	{tag: language.Swedish, order: "YMD", sep: "-", pad: true, dateTimeSep: " "},
	{tag: language.Japanese, order: "YMD", sep: "/", dateTimeSep: " "},
	{tag: language.Chinese, order: "YMD", sep: "/", dateTimeSep: " "},
	{tag: language.Korean, order: "YMD", sep: ". ", suffix: ".", dateTimeSep: " "},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(patterns))
	for i, p := range patterns {
		tags[i] = p.tag
	}
	return language.NewMatcher(tags)
}()

func matchLocale(acceptLanguage string) localePattern {
	if strings.TrimSpace(acceptLanguage) == "" {
		return patterns[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return patterns[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return patterns[0]
	}
	return patterns[idx]
}
