package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readJSON loads a whole JSON document into v. The caller decides what to do
// when the file is missing or unparsable; read paths in this package fall
// back to an empty default and log.
func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// writeJSON overwrites the document via a temp file and rename so a crash
// mid-write never leaves a truncated document behind.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
