// Package interchange dumps the whole inventory to a JSON file that another
// installation can import.
package interchange

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fekuna/ventstock/internal/inventory"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/google/uuid"
)

const FormatVersion = "1.0"

type Snapshot struct {
	Fans       []model.Fan        `json:"fans"`
	SheetMetal []model.SheetMetal `json:"sheet_metal"`
	Flexible   []model.Flexible   `json:"flexible"`
	ExportDate time.Time          `json:"export_date"`
	Version    string             `json:"version"`
	ExportID   uuid.UUID          `json:"export_id"`
}

// Dump reads every row of the three catalogs.
func Dump(ctx context.Context, store *inventory.Store) (*Snapshot, error) {
	fans, err := store.Fans.ListFans(ctx)
	if err != nil {
		return nil, err
	}
	sheetMetal, err := store.SheetMetal.ListSheetMetal(ctx)
	if err != nil {
		return nil, err
	}
	flexible, err := store.Flexible.ListFlexible(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Fans:       fans,
		SheetMetal: sheetMetal,
		Flexible:   flexible,
		ExportDate: time.Now().UTC(),
		Version:    FormatVersion,
		ExportID:   uuid.New(),
	}, nil
}

func (s *Snapshot) Counts() map[model.Catalog]int {
	return map[model.Catalog]int{
		model.CatalogFans:       len(s.Fans),
		model.CatalogSheetMetal: len(s.SheetMetal),
		model.CatalogFlexible:   len(s.Flexible),
	}
}

func WriteFile(path string, s *Snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func ReadFile(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", s.Version)
	}
	return &s, nil
}
