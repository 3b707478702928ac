package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/rogue/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of every character at one tick.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    int64  `json:"seed"`
	Map     string `json:"map"`
	Tick    int32  `json:"tick"`

	Bodies []BodyState `json:"bodies"`
}

// BodyState holds one character's state.
type BodyState struct {
	ID   uint32          `json:"id"`
	Kind components.Kind `json:"kind"`

	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"` // w, x, y, z
	Velocity [3]float32 `json:"velocity"`
	Angular  [3]float32 `json:"angular"`

	Basis     string   `json:"basis,omitempty"`
	Airborne  bool     `json:"airborne"`
	Current   string   `json:"current,omitempty"`
	Contender string   `json:"contender,omitempty"`
	Requested []string `json:"requested,omitempty"`

	Lifetime *LifetimeStats `json:"lifetime,omitempty"`
}

// SaveSnapshot writes a snapshot to dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
