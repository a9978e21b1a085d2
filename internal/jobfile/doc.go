// Package jobfile loads batch job files for `linecut batch`.
//
// A job file lists line ranges to remove from one or more files. Two
// encodings are accepted, chosen by file extension:
//   - .yaml / .yml parsed with gopkg.in/yaml.v3
//   - .json / .jsonc stripped of comments with github.com/tidwall/jsonc,
//     then parsed with encoding/json
//
// Example (YAML):
//
//	jobs:
//	  - path: notes.txt
//	    from: 2
//	    to: 4
//	  - path: /etc/app/config.ini
//	    from: 10
//	    to: 10
//
// Relative paths are resolved against the directory containing the job
// file, so a job file can be moved together with the files it edits.
package jobfile
