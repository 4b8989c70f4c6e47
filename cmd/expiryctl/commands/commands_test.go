package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domain_expiry/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPrefs_SetAndGet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prefs.ini")

	out, err := run(t, "--prefs", file, "prefs", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "theme = system")
	assert.Contains(t, out, "dateFormat = auto")

	_, err = run(t, "--prefs", file, "prefs", "set", "theme", "dark")
	require.NoError(t, err)
	_, err = run(t, "--prefs", file, "prefs", "set", "dateFormat", model.DateFormatISO)
	require.NoError(t, err)

	out, err = run(t, "--prefs", file, "prefs", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "theme = dark")
	assert.Contains(t, out, "dateFormat = YYYY-MM-DD")
}

func TestPrefs_SetRejectsUnknown(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prefs.ini")

	tests := [][]string{
		{"prefs", "set", "theme", "neon"},
		{"prefs", "set", "dateFormat", "YY/MM"},
		{"prefs", "set", "fontSize", "12"},
		{"prefs", "set", "theme"},
	}

	for _, args := range tests {
		_, err := run(t, append([]string{"--prefs", file}, args...)...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"domains":[{"domain":"example.com","expires":"2026-12-01T00:00:00Z","days_left":43,"error":null},{"domain":"lost.example","expires":null,"days_left":null,"error":"whois timeout"}],"updated":"2026-10-19T08:00:00Z"}`))
	}))
	defer srv.Close()

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "en_US.UTF-8")
	file := filepath.Join(t.TempDir(), "prefs.ini")

	out, err := run(t, "--prefs", file, "--api-url", srv.URL, "--color", "never", "status", "--system-scheme", "dark")
	require.NoError(t, err)

	assert.Contains(t, out, "Monitoring 2 domain(s)")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "12/1/2026")
	assert.Contains(t, out, "43 days")
	assert.Contains(t, out, "Error: whois timeout")
	assert.Contains(t, out, "(dark)")
}

func TestStatus_APIDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "prefs.ini")
	out, err := run(t, "--prefs", file, "--api-url", srv.URL, "--color", "never", "status")

	require.Error(t, err)
	assert.Contains(t, out, "Unable to connect to API")
	assert.Contains(t, out, "Check that the API is running at "+srv.URL)
}

func TestNextValue(t *testing.T) {
	assert.Equal(t, model.ThemeLight, nextValue(model.Themes, model.ThemeSystem))
	assert.Equal(t, model.ThemeSystem, nextValue(model.Themes, model.ThemeDark))
	assert.Equal(t, model.ThemeSystem, nextValue(model.Themes, "neon"))
}

func TestEnvLocale(t *testing.T) {
	tests := []struct {
		lcAll string
		lang  string
		want  string
	}{
		{"", "de_DE.UTF-8", "de-DE"},
		{"fr_FR@euro", "de_DE.UTF-8", "fr-FR"},
		{"C", "de_DE.UTF-8", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Setenv("LC_ALL", tt.lcAll)
		t.Setenv("LC_TIME", "")
		t.Setenv("LANG", tt.lang)
		assert.Equal(t, tt.want, envLocale())
	}
}

func TestSystemDark(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, systemDark("auto"))
	assert.False(t, systemDark("light"))

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, systemDark("auto"))
	assert.True(t, systemDark("dark"))
}

func TestReadKeys(t *testing.T) {
	keys := make(chan string)
	go readKeys(context.Background(), strings.NewReader("R\n t \n"), keys)

	var got []string
	for k := range keys {
		got = append(got, k)
	}
	assert.Equal(t, []string{"r", "t"}, got)
}

func TestReadKeys_StopsWhenNobodyListens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan string)
	done := make(chan struct{})

	go func() {
		readKeys(ctx, strings.NewReader("r\nr\nq\n"), keys)
		close(done)
	}()

	// the watch loop has returned: nothing receives from keys any more
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected readKeys to return after cancellation")
	}
}
