package nut

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes the variable file atomically: readers polling the path
// (upsc shims, node exporters) must never observe a half-written snapshot.
func WriteFile(path string, vars []Variable) error {
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s: %s\n", v.Name, v.Value)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("nut: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("nut: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("nut: rename into place: %w", err)
	}
	return nil
}
