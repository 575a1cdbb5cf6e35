// Package export writes practice history to spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mathdrill/internal/store"
)

const (
	attemptsSheet = "Attempts"
	topicsSheet   = "Topics"
)

var attemptHeader = []any{
	"Time", "Session", "Topic", "Template", "Level", "Problem",
	"Expected", "Submitted", "Correct", "Level change", "Level after", "Solution shown", "Seconds",
}

var topicHeader = []any{"Topic", "Attempted", "Correct", "Accuracy", "Highest level", "Last practiced"}

// WriteXLSX writes an Attempts sheet, newest first as given, and a Topics
// sheet with per-topic totals.
func WriteXLSX(w io.Writer, attempts []store.AttemptRecord, stats []store.TopicStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(topicsSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	pct, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	if err != nil {
		return fmt.Errorf("percent style: %w", err)
	}

	if err := writeTable(f, attemptsSheet, attemptHeader, len(attempts), header, func(i int) []any {
		a := attempts[i]
		return []any{
			a.Timestamp.Local().Format(time.DateTime), a.SessionID, a.TopicID, a.TemplateID,
			a.Level, a.Prompt, a.Expected, a.Submitted, a.Correct,
			a.LevelChange, a.LevelAfter, a.Revealed, float64(a.TimeMs) / 1000,
		}
	}); err != nil {
		return err
	}
	for col, width := range map[string]float64{"A": 20, "B": 38, "C": 16, "D": 22, "F": 60, "G": 14, "H": 14} {
		_ = f.SetColWidth(attemptsSheet, col, col, width)
	}

	if err := writeTable(f, topicsSheet, topicHeader, len(stats), header, func(i int) []any {
		s := stats[i]
		return []any{s.TopicID, s.Attempted, s.Correct, s.Accuracy(), s.HighestLevel,
			s.LastPracticed.Local().Format(time.DateTime)}
	}); err != nil {
		return err
	}
	if len(stats) > 0 {
		last := fmt.Sprintf("D%d", len(stats)+1)
		if err := f.SetCellStyle(topicsSheet, "D2", last, pct); err != nil {
			return fmt.Errorf("style accuracy: %w", err)
		}
	}
	_ = f.SetColWidth(topicsSheet, "A", "A", 18)
	_ = f.SetColWidth(topicsSheet, "F", "F", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// writeTable writes a styled, frozen, filterable header and n rows.
func writeTable(f *excelize.File, sheet string, header []any, n int, style int, row func(int) []any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	for i := range n {
		vals := row(i)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("%s panes: %w", sheet, err)
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, n+1), nil); err != nil {
		return fmt.Errorf("%s filter: %w", sheet, err)
	}
	return nil
}
