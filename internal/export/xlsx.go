// Package export writes inventory snapshots as xlsx workbooks.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/tansu/internal/models"
)

const (
	inventorySheet  = "Inventory"
	statisticsSheet = "Statistics"
)

var inventoryHeader = []string{"ID", "Name", "Color", "Size", "Status", "Has Image", "Created", "Updated"}

// WriteWorkbook writes the full inventory and its aggregates to an xlsx
// file at path, overwriting any existing file.
func WriteWorkbook(path string, shirts []*models.Shirt, stats *models.Statistics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeInventorySheet(f, shirts); err != nil {
		return err
	}
	if err := writeStatisticsSheet(f, stats); err != nil {
		return err
	}

	// The workbook starts with a default sheet; drop it once ours exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(inventorySheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeInventorySheet(f *excelize.File, shirts []*models.Shirt) error {
	if _, err := f.NewSheet(inventorySheet); err != nil {
		return err
	}
	if err := setRow(f, inventorySheet, 1, toCells(inventoryHeader)); err != nil {
		return err
	}
	for i, s := range shirts {
		hasImage := "no"
		if s.HasImage() {
			hasImage = "yes"
		}
		row := []any{
			s.ID, s.Name, s.Color, s.Size, s.Status, hasImage,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, inventorySheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(inventorySheet, "B", "H", 18)
}

func writeStatisticsSheet(f *excelize.File, stats *models.Statistics) error {
	if _, err := f.NewSheet(statisticsSheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Total shirts", stats.Total},
		{"With images", stats.WithImages},
		{},
		{"By status"},
	}
	for _, status := range models.Statuses {
		rows = append(rows, []any{status, stats.ByStatus[status]})
	}
	rows = append(rows, []any{}, []any{"By color"})
	for _, key := range sortedKeys(stats.ByColor) {
		rows = append(rows, []any{key, stats.ByColor[key]})
	}
	rows = append(rows, []any{}, []any{"By size"})
	for _, key := range sortedKeys(stats.BySize) {
		rows = append(rows, []any{key, stats.BySize[key]})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, statisticsSheet, i+1, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(statisticsSheet, "A", "A", 18)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(header []string) []any {
	out := make([]any, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
