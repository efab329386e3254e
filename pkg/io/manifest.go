package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/pipeline"
)

// ManifestFile is the manifest's file name inside a dataset root.
const ManifestFile = "manifest.json"

// Manifest records how a dataset was produced.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Version   string          `json:"version"`
	Config    string          `json:"config,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Splits    []SplitManifest `json:"splits"`
}

// SplitManifest records the counts of one datatype split.
type SplitManifest struct {
	Name     string `json:"name"`
	Seed     int64  `json:"seed"`
	Diagrams int    `json:"diagrams"`
	Pairs    int    `json:"pairs"`
}

// NewManifest describes a finished run. Width and height are the size of
// the stored pairs.
func NewManifest(result *pipeline.Result, version, configPath string, width, height int) *Manifest {
	m := &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Version:   version,
		Config:    configPath,
		Width:     width,
		Height:    height,
		Splits:    make([]SplitManifest, 0, len(result.Splits)),
	}
	for _, s := range result.Splits {
		m.Splits = append(m.Splits, SplitManifest{
			Name:     s.Name,
			Seed:     s.Seed,
			Diagrams: s.Diagrams,
			Pairs:    s.Pairs,
		})
	}
	return m
}

// WriteManifestTo encodes m as indented JSON.
func WriteManifestTo(m *Manifest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteManifest writes m to manifest.json under root.
func WriteManifest(root string, m *Manifest) error {
	path := filepath.Join(root, ManifestFile)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteManifestTo(m, f)
}

// ReadManifest reads manifest.json from a dataset root.
func ReadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode %s", path)
	}
	return &m, nil
}
