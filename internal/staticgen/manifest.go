package staticgen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	manifestFile    = "manifest.json"
	manifestVersion = 1
)

// Manifest records what a prerender run produced.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Players     []string  `json:"players"`
	Teams       []string  `json:"teams"`
	Failed      []string  `json:"failed"`
}

func newManifest(now time.Time) Manifest {
	return Manifest{
		Version:     manifestVersion,
		GeneratedAt: now.UTC(),
		Players:     []string{},
		Teams:       []string{},
		Failed:      []string{},
	}
}

func (m *Manifest) sort() {
	sort.Strings(m.Players)
	sort.Strings(m.Teams)
	sort.Strings(m.Failed)
}

// ReadManifest loads the manifest written to root by a previous run.
func ReadManifest(root string) (Manifest, error) {
	f, err := os.Open(filepath.Join(root, manifestFile))
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(w *Writer, m Manifest) error {
	m.sort()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return w.Write(manifestFile, data)
}
