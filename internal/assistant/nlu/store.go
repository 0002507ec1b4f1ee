package nlu

import (
	"fmt"
	"os"
	"path/filepath"
)

// ModelStore persists trained engine snapshots as JSON files on disk.
type ModelStore struct {
	dir string
}

func NewModelStore(dir string) *ModelStore {
	return &ModelStore{dir: dir}
}

func (s *ModelStore) path(kind string) string {
	return filepath.Join(s.dir, fmt.Sprintf("intent_model_%s.json", kind))
}

// Save writes the engine's snapshot under the store directory. Engines
// without snapshot support (such as the keyword fallback) are rejected.
func (s *ModelStore) Save(kind string, engine IntentEngine) error {
	snap, ok := engine.(Snapshotter)
	if !ok {
		return fmt.Errorf("engine %q does not support persistence", kind)
	}
	data, err := snap.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot %s engine: %w", kind, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	if err := os.WriteFile(s.path(kind), data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}

// Load restores a previously saved snapshot into the engine.
func (s *ModelStore) Load(kind string, engine IntentEngine) error {
	snap, ok := engine.(Snapshotter)
	if !ok {
		return fmt.Errorf("engine %q does not support persistence", kind)
	}
	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		return fmt.Errorf("no model available for %q: %w", kind, err)
	}
	if err := snap.Restore(data); err != nil {
		return fmt.Errorf("restore %s engine: %w", kind, err)
	}
	return nil
}
