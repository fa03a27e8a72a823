package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Applications"

var exportHeaders = []string{
	"APPLICATION ID",
	"FULL NAME",
	"EMAIL",
	"BRANCH",
	"GPA",
	"GRADUATION YEAR",
	"SKILLS",
	"READINESS SCORE",
	"STATUS",
	"APPLIED AT",
}

// Export renders every application of a drive as xlsx (default) or csv and
// returns the file bytes with a suggested filename.
func (uc *applicationUsecase) Export(ctx context.Context, driveID int64, format string) ([]byte, string, error) {
	if _, err := requireAdmin(ctx, "Only admins can export applications"); err != nil {
		return nil, "", err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "xlsx" && format != "csv" {
		return nil, "", apperror.BadRequest("Format must be xlsx or csv")
	}

	if _, err := uc.getDrive(ctx, driveID); err != nil {
		return nil, "", err
	}

	rows, err := uc.applicationRepo.ExportRows(ctx, driveID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	stamp := uc.now().Format("20060102_150405")
	if format == "csv" {
		data, err := exportCSV(rows)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("drive_%d_applications_%s.csv", driveID, stamp), nil
	}

	data, err := exportExcel(rows)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, fmt.Sprintf("drive_%d_applications_%s.xlsx", driveID, stamp), nil
}

func exportRecord(row domain.ApplicationExportRow) []interface{} {
	var readiness interface{} = ""
	if row.ReadinessScore != nil {
		readiness = *row.ReadinessScore
	}
	return []interface{}{
		row.ApplicationID,
		safeCell(row.StudentName),
		safeCell(row.Email),
		safeCell(row.Branch),
		row.GPA,
		row.GraduationYear,
		safeCell(strings.Join(row.Skills, ", ")),
		readiness,
		safeCell(row.Status),
		row.AppliedAt.Format(time.RFC3339),
	}
}

// safeCell quotes text a spreadsheet would otherwise evaluate as a formula.
func safeCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

// exportExcel generates an Excel file from application rows
func exportExcel(rows []domain.ApplicationExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	// Write headers
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheetName, "A1", endCell, headerStyle)

	// Write data rows
	for rowIdx, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		record := exportRecord(row)
		if err := f.SetSheetRow(exportSheetName, cell, &record); err != nil {
			return nil, err
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// exportCSV generates a CSV file from application rows
func exportCSV(rows []domain.ApplicationExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := exportRecord(row)
		line := make([]string, len(record))
		for i, v := range record {
			switch val := v.(type) {
			case float64:
				line[i] = strconv.FormatFloat(val, 'f', -1, 64)
			default:
				line[i] = fmt.Sprint(val)
			}
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
