package web

import (
	"bytes"
	"strings"
	"testing"

	"domain_expiry/internal/model"
)

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}

	var buf bytes.Buffer
	err = r.RenderIndex(&buf, PageData{
		ClientID:    "6f1c1b9e-5d1b-4c1e-9a38-2d8f0b6d1c11",
		Mode:        "dark",
		Theme:       model.ThemeSystem,
		DateFormat:  model.DateFormatISO,
		LoadingText: "Loading…",
	})
	if err != nil {
		t.Fatalf("RenderIndex() failed: %v", err)
	}

	html := buf.String()
	checks := []string{
		`data-theme="dark"`,
		`data-theme-value="system" class="active"`,
		`data-format-value="YYYY-MM-DD" class="active"`,
		`"6f1c1b9e-5d1b-4c1e-9a38-2d8f0b6d1c11"`,
		"Loading…",
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("Expected page to contain %s", want)
		}
	}

	if strings.Contains(html, `data-theme-value="light" class="active"`) {
		t.Error("Expected only the stored theme to be active")
	}
}

func TestRenderIndex_FourColumns(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.RenderIndex(&buf, PageData{Mode: "light", Theme: model.ThemeSystem, DateFormat: model.DateFormatAuto}); err != nil {
		t.Fatalf("RenderIndex() failed: %v", err)
	}
	html := buf.String()

	if got := strings.Count(html, "<th>"); got != 4 {
		t.Errorf("Expected 4 columns, got %d", got)
	}
	if !strings.Contains(html, "<th>Status</th>") {
		t.Error("Expected a Status column")
	}

	// rows carry the tier class, the icon gets its own cell
	for _, want := range []string{"tr.className = r.class", "'status-cell'", "'status-icon'", "days.textContent = r.days"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected row script to contain %s", want)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{model.ThemeSystem, "System"},
		{model.ThemeDark, "Dark"},
		{model.DateFormatAuto, "Auto"},
		{model.DateFormatDMYSlash, "DD/MM/YYYY"},
	}

	for _, tt := range tests {
		if got := label(tt.in); got != tt.want {
			t.Errorf("Expected label %s, got %s", tt.want, got)
		}
	}
}
