package staticgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists rendered documents below a root directory. Each file is written to a temp file
// and renamed into place so a reader never sees a partial page.
type Writer struct {
	root string
}

// NewWriter constructs a writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root exposes the output directory (primarily for testing).
func (w *Writer) Root() string {
	if w == nil {
		return ""
	}
	return w.root
}

// PagePath maps a site route to the file that serves it: "/" is index.html, "/players/x" is
// players/x/index.html.
func PagePath(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(route), "index.html")
}

// Write stores data at rel. An identical existing file is left untouched.
func (w *Writer) Write(rel string, data []byte) error {
	if w == nil || w.root == "" {
		return fmt.Errorf("output directory not configured")
	}
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(rel), "..") {
		return fmt.Errorf("invalid output path %q", rel)
	}

	target := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
