package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/emfield/internal/metrics"
)

type ExportData struct {
	Metadata *RunMetadata    `json:"metadata"`
	Modes    []ModeRecord    `json:"modes"`
	Profile  []metrics.Slice `json:"profile"`
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	modes, err := s.LoadModes(runID)
	if err != nil {
		return nil, err
	}
	profile, err := s.LoadProfile(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Metadata: meta, Modes: modes, Profile: profile}, nil
}

// ExportJSON writes the run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

var (
	modesHeader   = []any{"index", "freq", "k", "phase", "e0", "b0", "ex", "ey", "ez", "bx", "by", "bz"}
	profileHeader = []any{"index", "position", "mean_energy", "max_energy"}
)

// ExportXLSX writes the run to a workbook with a "modes" and a "profile"
// sheet.
func (s *Store) ExportXLSX(runID, path string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "modes"); err != nil {
		return err
	}
	if _, err := f.NewSheet("profile"); err != nil {
		return err
	}

	rows := make([][]any, 0, len(data.Modes))
	for _, m := range data.Modes {
		rows = append(rows, []any{m.Index, m.Freq, m.K, m.Phase, m.E0, m.B0, m.Ex, m.Ey, m.Ez, m.Bx, m.By, m.Bz})
	}
	if err := writeSheet(f, "modes", modesHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, p := range data.Profile {
		rows = append(rows, []any{p.Index, p.Position, p.Mean, p.Max})
	}
	if err := writeSheet(f, "profile", profileHeader, rows); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
