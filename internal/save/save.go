// Package save persists game snapshots as a JSON array in a single file.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"sparselife/internal/geom"
	"sparselife/internal/life"
)

// Snapshot is a restorable record of the game: the living cells plus the
// view (scale and pan offset) they were authored under.
type Snapshot struct {
	Cells   []geom.Point `json:"living_cells"`
	Scale   float64      `json:"grid_size"`
	Offset  geom.Vec     `json:"pan_position"`
	Created time.Time    `json:"created"`
	Name    string       `json:"name"`
}

// LivingSet rebuilds the sparse living set from the snapshot.
func (s Snapshot) LivingSet() life.Set {
	return life.NewSet(s.Cells...)
}

// Store reads and writes snapshots in one JSON file. Saves are large and
// touched rarely, so nothing is cached in memory; every operation is a
// read-modify-write of the file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path. The file is created
// lazily on the first Add.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all stored snapshots. A missing or empty file is a
// legitimate empty state, not an error.
func (st *Store) List() ([]Snapshot, error) {
	data, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading saves: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var saves []Snapshot
	if err := json.Unmarshal(data, &saves); err != nil {
		return nil, fmt.Errorf("decoding saves: %w", err)
	}
	return saves, nil
}

// Add appends a snapshot to the file.
func (st *Store) Add(s Snapshot) error {
	saves, err := st.List()
	if err != nil {
		return err
	}
	saves = append(saves, s)
	return st.write(saves)
}

// Delete removes the snapshot at index. Out-of-bounds indexes are safe; the
// return value reports whether a snapshot was removed.
func (st *Store) Delete(index int) (bool, error) {
	saves, err := st.List()
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(saves) {
		return false, nil
	}
	saves = append(saves[:index], saves[index+1:]...)
	if err := st.write(saves); err != nil {
		return false, err
	}
	return true, nil
}

func (st *Store) write(saves []Snapshot) error {
	data, err := json.MarshalIndent(saves, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding saves: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("writing saves: %w", err)
	}
	return nil
}
