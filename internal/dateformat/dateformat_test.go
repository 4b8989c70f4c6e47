package dateformat

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestFormat_FixedFormats(t *testing.T) {
	const iso = "2025-03-07T10:00:00Z"
	tests := []struct {
		format   string
		expected string
	}{
		{"DD/MM/YYYY", "07/03/2025"},
		{"DD-MM-YYYY", "07-03-2025"},
		{"MM/DD/YYYY", "03/07/2025"},
		{"MM-DD-YYYY", "03-07-2025"},
		{"YYYY-MM-DD", "2025-03-07"},
		{"unknown-format", "03/07/2025"},
		{"", "03/07/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			result := Format(iso, tt.format)
			if result != tt.expected {
				t.Errorf("Format(%q, %q) = %q; want %q", iso, tt.format, result, tt.expected)
			}
		})
	}
}

func TestFormat_UsesUTCCalendarDate(t *testing.T) {
	tests := []struct {
		name     string
		iso      string
		expected string
	}{
		{
			name:     "negative offset crosses into next UTC day",
			iso:      "2025-03-01T23:30:00-05:00",
			expected: "2025-03-02",
		},
		{
			name:     "positive offset crosses into previous UTC day",
			iso:      "2025-03-01T01:00:00+09:00",
			expected: "2025-02-28",
		},
		{
			name:     "date only",
			iso:      "2026-12-31",
			expected: "2026-12-31",
		},
		{
			name:     "fractional seconds",
			iso:      "2026-01-05T00:00:00.123Z",
			expected: "2026-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.iso, "YYYY-MM-DD")
			if result != tt.expected {
				t.Errorf("Format(%q) = %q; want %q", tt.iso, result, tt.expected)
			}
		})
	}
}

func TestFormat_InvalidInput(t *testing.T) {
	inputs := []string{"", "   ", "not-a-date", "2025-13-45"}
	formats := []string{"auto", "DD/MM/YYYY", "YYYY-MM-DD", "bogus"}

	for _, in := range inputs {
		for _, f := range formats {
			if result := Format(in, f); result != NotAvailable {
				t.Errorf("Format(%q, %q) = %q; want %q", in, f, result, NotAvailable)
			}
		}
	}
}

func TestFormat_AutoLocale(t *testing.T) {
	const iso = "2025-03-07T23:59:00-02:00" // 2025-03-08 in UTC
	tests := []struct {
		acceptLanguage string
		expected       string
	}{
		{"", "3/8/2025"},
		{"en-US,en;q=0.9", "3/8/2025"},
		{"en-GB,en;q=0.8", "08/03/2025"},
		{"de-DE", "8.3.2025"},
		{"fr-FR", "08/03/2025"},
		{"ja", "2025/3/8"},
		{"sv-SE", "2025-03-08"},
		{"ko-KR", "2025. 3. 8."},
	}

	for _, tt := range tests {
		t.Run(tt.acceptLanguage, func(t *testing.T) {
			f := New(tt.acceptLanguage, time.UTC)
			result := f.Format(iso, "auto")
			if result != tt.expected {
				t.Errorf("auto format for %q = %q; want %q", tt.acceptLanguage, result, tt.expected)
			}
		})
	}
}

func TestNew_LocaleMatching(t *testing.T) {
	if tag := New("en-GB", nil).Locale(); tag != language.BritishEnglish {
		t.Errorf("Expected en-GB, got %s", tag)
	}
	if tag := New("!!garbage!!", nil).Locale(); tag != language.AmericanEnglish {
		t.Errorf("Expected fallback en-US, got %s", tag)
	}
}

func TestFormatDateTime(t *testing.T) {
	tests := []struct {
		acceptLanguage string
		expected       string
	}{
		{"en-US", "3/7/2025, 3:04:05 PM"},
		{"en-GB", "07/03/2025, 15:04:05"},
		{"de", "7.3.2025, 15:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.acceptLanguage, func(t *testing.T) {
			f := New(tt.acceptLanguage, time.UTC)
			result := f.FormatDateTime("2025-03-07T15:04:05Z")
			if result != tt.expected {
				t.Errorf("FormatDateTime = %q; want %q", result, tt.expected)
			}
		})
	}

	if result := New("en-US", time.UTC).FormatDateTime("yesterday"); result != NotAvailable {
		t.Errorf("Expected %q for invalid input, got %q", NotAvailable, result)
	}
}

func TestFormatDateTime_DisplayZone(t *testing.T) {
	tz := time.FixedZone("UTC+2", 2*3600)
	f := New("en-GB", tz)
	result := f.FormatDateTime("2025-03-07T23:00:00Z")
	if result != "08/03/2025, 01:00:00" {
		t.Errorf("Expected date-time in display zone, got %q", result)
	}
}
