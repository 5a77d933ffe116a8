package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeparr.toml")

	require.NoError(t, runInitCmd(initCmd, []string{path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[plex]")
	assert.Contains(t, string(data), "[[library]]")
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeparr.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0o644))

	err := runInitCmd(initCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The existing file is untouched.
	data, _ := os.ReadFile(path)
	assert.Equal(t, "# mine", string(data))
}

func TestInitCommandForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeparr.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0o644))

	initForce = true
	t.Cleanup(func() { initForce = false })

	require.NoError(t, runInitCmd(initCmd, []string{path}))

	data, _ := os.ReadFile(path)
	assert.Contains(t, string(data), "[plex]")
}

func TestSectionsCommand(t *testing.T) {
	srv := plexServer(t, 42)

	writeConfig(t, fmt.Sprintf(`
[plex]
url = %q
token = "test-token"
`, srv.URL))

	require.NoError(t, runSectionsCmd(sectionsCmd, nil))
}

func TestMetricsCommand(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "metrics.json")
	seed := strings.TrimSpace(`
{
  "last_updated": "2025-06-01T03:00:05Z",
  "summary": {
    "total_runs": 1,
    "successful_runs": 1,
    "partial_runs": 0,
    "failed_runs": 0,
    "total_libraries_processed": 1,
    "total_libraries_succeeded": 1,
    "total_libraries_failed": 0
  },
  "runs": [
    {
      "start_time": "2025-06-01T03:00:00Z",
      "end_time": "2025-06-01T03:00:05Z",
      "duration_seconds": 5.0,
      "exit_code": 0,
      "libraries_total": 1,
      "libraries_successful": 1,
      "libraries_failed": 0,
      "library_details": [
        {
          "name": "Movies",
          "success": true,
          "file_count": 10,
          "media_count": 10,
          "threshold_percentage": 100.0,
          "error_message": null
        }
      ]
    }
  ]
}
`)
	require.NoError(t, os.WriteFile(metricsPath, []byte(seed), 0o644))

	writeConfig(t, fmt.Sprintf(`
[plex]
url = "http://localhost:32400"
token = "test-token"

[metrics]
file = %q
`, metricsPath))

	require.NoError(t, runMetricsCmd(metricsCmd, nil))
}

func TestMetricsCommandNotConfigured(t *testing.T) {
	writeConfig(t, `
[plex]
url = "http://localhost:32400"
token = "test-token"
`)

	err := runMetricsCmd(metricsCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMetricsCommandNoRunsYet(t *testing.T) {
	writeConfig(t, fmt.Sprintf(`
[plex]
url = "http://localhost:32400"
token = "test-token"

[metrics]
file = %q
`, filepath.Join(t.TempDir(), "metrics.json")))

	// A missing metrics file is not an error.
	require.NoError(t, runMetricsCmd(metricsCmd, nil))
}
