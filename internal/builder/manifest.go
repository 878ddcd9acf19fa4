package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFilename sits at the root of a book directory.
const ManifestFilename = "manifest.json"

// ManifestVersion is the book layout this package reads and writes.
const ManifestVersion = 1

// Manifest describes a built book: how positions map to shards and how
// shards are stored.
type Manifest struct {
	Version     int    `json:"version"`
	TotalShards int    `json:"total_shards"`
	Strategy    string `json:"strategy"`
	Compression string `json:"compression"`
	Storage     string `json:"storage,omitempty"`

	// RecordCount is the number of canonical positions in the book.
	RecordCount int64 `json:"record_count"`
	// ShardCount is the number of non-empty shards.
	ShardCount int `json:"shard_count"`
	// Positions is the number of reachable positions the records cover.
	Positions int `json:"positions"`

	BuiltAt time.Time `json:"built_at"`
}

// Validate rejects manifests this package cannot open. An empty Storage is
// read as StorageFiles, which books predating SQLite storage relied on.
func (m *Manifest) Validate() error {
	if m.Version != ManifestVersion {
		return fmt.Errorf("unsupported book version %d", m.Version)
	}
	if m.TotalShards < 1 {
		return fmt.Errorf("manifest has %d total shards", m.TotalShards)
	}
	if m.ShardCount > m.TotalShards {
		return fmt.Errorf("manifest has %d shards of %d", m.ShardCount, m.TotalShards)
	}
	if m.Storage == "" {
		m.Storage = StorageFiles
	}
	return nil
}

// WriteManifest writes m into dir. The file is replaced atomically so a
// reader never sees a partial manifest.
func WriteManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ManifestFilename+".*")
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, ManifestFilename))
}

// ReadManifest loads and validates the manifest of the book in dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
