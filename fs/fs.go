// Package fs provides file-backed output writers for processed records: the
// archive-text format that mirrors the WARC layout with extracted text in
// place of the payload, and a structured JSON list format.
package fs

import (
	"os"
	"path/filepath"

	"github.com/dsullivan/warctext"
)

// openDestination validates the destination's parent directory and opens the
// file for streaming writes, truncating any previous content.
func openDestination(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, warctext.Errorf(warctext.ECONFIG, "output directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, warctext.Errorf(warctext.ECONFIG, "output parent is not a directory: %s", dir)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, &warctext.Error{
			Code:    warctext.ECONFIG,
			Message: "output destination is not writable: " + path,
			Err:     err,
		}
	}
	return f, nil
}
