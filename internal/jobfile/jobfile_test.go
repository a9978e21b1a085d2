package jobfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/linecut/internal/model"
)

// writeJobFile writes content to name inside a fresh temp directory.
func writeJobFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		hasError bool
	}{
		{"jobs.yaml", FormatYAML, false},
		{"jobs.YML", FormatYAML, false},
		{"jobs.json", FormatJSON, false},
		{"jobs.jsonc", FormatJSON, false},
		{"jobs.toml", "", true},
		{"jobs", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestLoad_YAML verifies YAML parsing and that relative paths resolve
// against the job file's directory while absolute paths stay untouched.
func TestLoad_YAML(t *testing.T) {
	path := writeJobFile(t, "jobs.yaml", `
jobs:
  - path: notes.txt
    from: 2
    to: 4
  - path: /abs/other.txt
    from: 1
    to: 1
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Jobs, 2)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "notes.txt"), f.Jobs[0].Path)
	assert.Equal(t, model.LineRange{From: 2, To: 4}, f.Jobs[0].Range())
	assert.Equal(t, "/abs/other.txt", f.Jobs[1].Path)
}

// TestLoad_JSONC verifies that comments and trailing commas are accepted.
func TestLoad_JSONC(t *testing.T) {
	path := writeJobFile(t, "jobs.jsonc", `{
		// strip the generated header
		"jobs": [
			{"path": "gen.go", "from": 1, "to": 3}, /* trailing comma below */
		],
	}`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Jobs, 1)
	assert.Equal(t, model.LineRange{From: 1, To: 3}, f.Jobs[0].Range())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode model.ExitCode
	}{
		{"unknown extension", "jobs.toml", "", model.ExitInvalidJobFile},
		{"bad yaml", "jobs.yaml", "jobs: [", model.ExitInvalidJobFile},
		{"unknown field", "jobs.yaml", "jobs:\n  - path: a\n    form: 1\n    to: 2\n", model.ExitInvalidJobFile},
		{"no jobs", "jobs.json", `{"jobs": []}`, model.ExitInvalidJobFile},
		{"empty file", "jobs.yaml", "", model.ExitInvalidJobFile},
		{"missing path", "jobs.json", `{"jobs": [{"from": 1, "to": 2}]}`, model.ExitInvalidJobFile},
		{"reversed range", "jobs.json", `{"jobs": [{"path": "a", "from": 3, "to": 2}]}`, model.ExitInvalidJobFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeJobFile(t, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, tt.wantCode, cliErr.Code)
		})
	}
}

func TestLoad_ReversedRangeKeepsSentinel(t *testing.T) {
	path := writeJobFile(t, "jobs.json", `{"jobs": [{"path": "a", "from": 1, "to": 1}, {"path": "b", "from": 0, "to": 2}]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRange)
	assert.Contains(t, err.Error(), "job 2 (b)")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitFileAccess, cliErr.Code)
}
