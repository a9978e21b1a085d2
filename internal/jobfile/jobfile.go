package jobfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/linecut/internal/model"
)

// Format identifies the encoding of a job file.
type Format string

const (
	// FormatYAML is a YAML job file (.yaml, .yml).
	FormatYAML Format = "yaml"

	// FormatJSON is a JSON or JSONC job file (.json, .jsonc).
	FormatJSON Format = "json"
)

// Job is one removal request: drop lines From..To (1-based, inclusive)
// from the file at Path.
type Job struct {
	Path string `json:"path" yaml:"path"`
	From int    `json:"from" yaml:"from"`
	To   int    `json:"to" yaml:"to"`
}

// Range returns the job's line range.
func (j Job) Range() model.LineRange {
	return model.LineRange{From: j.From, To: j.To}
}

// File is the parsed content of a job file.
type File struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// DetectFormat picks the encoding from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported job file extension %q: use .yaml, .yml, .json or .jsonc", filepath.Ext(path))
	}
}

// Load reads, parses, validates, and resolves the job file at path.
//
// Returns a CLIError with ExitFileAccess if the file cannot be read and
// ExitInvalidJobFile if it cannot be parsed or contains an invalid job.
func Load(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidJobFile, "cannot load job file", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFileAccess,
			fmt.Sprintf("cannot read job file %s", path), err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidJobFile,
			fmt.Sprintf("cannot parse job file %s", path), err)
	}
	if err := f.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidJobFile,
			fmt.Sprintf("invalid job file %s", path), err)
	}

	f.Resolve(filepath.Dir(path))
	return f, nil
}

// Parse decodes job file content. Unknown fields are rejected in both
// encodings so that typos such as "form:" do not silently become zero.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown job file format %q", format)
	}
	return &f, nil
}

// Validate checks that there is at least one job and that every job has a
// path and a structurally valid range. Errors name the 1-based job index.
func (f *File) Validate() error {
	if len(f.Jobs) == 0 {
		return errors.New("no jobs defined")
	}
	for i, j := range f.Jobs {
		if strings.TrimSpace(j.Path) == "" {
			return fmt.Errorf("job %d: path is required", i+1)
		}
		if err := j.Range().Validate(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i+1, j.Path, err)
		}
	}
	return nil
}

// Resolve rewrites relative job paths to be relative to baseDir.
func (f *File) Resolve(baseDir string) {
	for i := range f.Jobs {
		if !filepath.IsAbs(f.Jobs[i].Path) {
			f.Jobs[i].Path = filepath.Join(baseDir, f.Jobs[i].Path)
		}
	}
}
