package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/awb-tracker/internal/dhl"
)

// These tests drive the shared root command and are not run in parallel.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, endpoint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf(`
tracking:
  awb: "0000000000"
dhl:
  endpoint: %s
  rate_limit:
    per_second: 100
logging:
  level: error
`, endpoint)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "awb-tracker dev\n"), out)
	assert.Contains(t, out, "go:     "+runtime.Version())
	assert.Contains(t, out, "commit: ")
}

func TestCheckCommand_JSON(t *testing.T) {
	var gotAWB string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAWB = r.URL.Query().Get("AWB")
		_, _ = w.Write([]byte(`{"results":[{"checkpoints":[
			{"counter":1,"description":"Shipment picked up"},
			{"counter":2,"description":"Out for delivery"}
		]}]}`))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "check", "1234567890", "--config", writeConfig(t, srv.URL), "--output", "json")
	require.NoError(t, err)

	// The positional AWB wins over the config file.
	assert.Equal(t, "1234567890", gotAWB)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Latest)
	assert.Equal(t, "Out for delivery", report.Latest.Description)
}

func TestCheckCommand_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := execute(t, "check", "--config", writeConfig(t, srv.URL), "--output", "table")
	require.ErrorIs(t, err, dhl.ErrNoData)
}

func TestCheckCommand_MissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "check", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--output", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestCheckCommand_UnknownOutput(t *testing.T) {
	_, err := execute(t, "check", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}
