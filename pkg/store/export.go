// Package store persists ingested acts: one JSON document per law in a
// flat-file export directory, and optionally a PostgreSQL database.
// Each write fully replaces any prior record for the same law id.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolbeans/slovlex/pkg/types"
)

// FileExporter writes one <law-id>.json file per act into a directory.
type FileExporter struct {
	dir string
}

// NewFileExporter creates the export directory if needed.
func NewFileExporter(dir string) (*FileExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating export directory %s: %w", dir, err)
	}
	return &FileExporter{dir: dir}, nil
}

// SaveAct writes the act's JSON document, replacing any previous export
// for the same law id.
func (e *FileExporter) SaveAct(act *types.ParsedAct) error {
	data, err := json.MarshalIndent(act, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling act %s: %w", act.LawID, err)
	}

	path := e.pathFor(act.LawID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", path, err)
	}
	return nil
}

// SaveAll exports every act, stopping at the first failure.
func (e *FileExporter) SaveAll(acts []types.ParsedAct) error {
	for i := range acts {
		if err := e.SaveAct(&acts[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadActs reads every exported act in the directory, in file-name order.
func LoadActs(dir string) ([]types.ParsedAct, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("store: reading export directory %s: %w", dir, err)
	}

	var acts []types.ParsedAct
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("store: reading %s: %w", entry.Name(), err)
		}

		var act types.ParsedAct
		if err := json.Unmarshal(data, &act); err != nil {
			return nil, fmt.Errorf("store: decoding %s: %w", entry.Name(), err)
		}
		acts = append(acts, act)
	}

	return acts, nil
}

// pathFor returns the export file path for a law id.
func (e *FileExporter) pathFor(lawID string) string {
	return filepath.Join(e.dir, lawID+".json")
}
