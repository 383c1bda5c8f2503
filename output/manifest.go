package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ManifestName is the conventional artifact name for a run's manifest.
const ManifestName = "MANIFEST.json"

// Manifest describes a completed or running computation: its identity, the
// input it was given and the artifacts it produced.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Input     json.RawMessage `json:"input,omitempty"`
	Artifacts []string        `json:"artifacts"`
}

// NewManifest creates a manifest with a fresh run ID, echoing the input
// document.
func NewManifest(input any) (*Manifest, error) {
	m := &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if input != nil {
		raw, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("marshal manifest input: %w", err)
		}
		m.Input = raw
	}

	return m, nil
}

// AddArtifact records an artifact name.
func (m *Manifest) AddArtifact(name string) {
	m.Artifacts = append(m.Artifacts, name)
}

// Encode serializes the manifest as indented JSON.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Save stores the manifest under ManifestName. LocalStore's temp-and-rename
// Put makes the update atomic on the filesystem backend.
func (m *Manifest) Save(ctx context.Context, store Store) error {
	pr, pw := io.Pipe()

	go func() {
		pw.CloseWithError(m.Encode(pw))
	}()

	return store.Put(ctx, ManifestName, pr)
}

// LoadManifest reads a manifest from the store.
func LoadManifest(ctx context.Context, store Store) (*Manifest, error) {
	rc, err := store.Open(ctx, ManifestName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var m Manifest
	if err := json.NewDecoder(rc).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return &m, nil
}
