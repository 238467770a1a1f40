// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contestxml

import (
	"fmt"
	"os"
	"path/filepath"
)

// Render formats a copy of the document with two-space indentation.
// The document itself is not modified, so Render is safe to call more
// than once and always yields the same bytes for the same tree.
func Render(d *Document) ([]byte, error) {
	formatted := d.tree.Copy()
	formatted.Indent(2)
	data, err := formatted.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("rendering contest document: %w", err)
	}
	return data, nil
}

// WriteFile writes data to path atomically: the bytes go to a temporary
// file in the same directory, which is synced and then renamed over
// path. On any failure the temporary file is removed and path is left
// as it was.
func WriteFile(path string, data []byte) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}
	if err := os.Chmod(temporaryPath, 0o644); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming %s into place: %w", path, err)
	}
	return nil
}
