// Package export renders the rent ledger to an Excel workbook for
// offline bookkeeping.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"proptrack/internal/ledger"
	"proptrack/internal/models"
)

const sheetName = "Rent Ledger"

// LedgerHeader is the payment-table header row.
var LedgerHeader = []string{
	"Date Paid",
	"Resident",
	"Property",
	"Due Month",
	"Purposes",
	"Method",
	"Amount",
}

// WriteLedger writes one sheet with the monthly summary block followed by
// the payments credited to that month. Tenant references that no longer
// resolve are labeled with the archived fallback.
func WriteLedger(s models.Snapshot, month string, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	sum := ledger.Summarize(s, month)

	summaryRows := [][]any{
		{"Month", sum.Month},
		{"Total Collected", sum.TotalRevenue},
		{"Expected Revenue", sum.TotalExpectedRevenue},
		{"Expenses", sum.TotalExpenses},
		{"Net Profit", sum.NetProfit},
		{"Collection Progress (%)", sum.CollectionProgress},
		{"Active Residents", sum.ActiveTenants},
		{"Vacant Rooms", sum.VacantCount},
	}
	for i, row := range summaryRows {
		for col, value := range row {
			if err := setCellValue(f, col+1, i+1, value); err != nil {
				return err
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headerRow := len(summaryRows) + 2
	for col, header := range LedgerHeader {
		if err := setCellValue(f, col+1, headerRow, header); err != nil {
			return err
		}
	}
	startCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	endCell, _ := excelize.CoordinatesToCellName(len(LedgerHeader), headerRow)
	if err := f.SetCellStyle(sheetName, startCell, endCell, headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	row := headerRow + 1
	for _, p := range s.Payments {
		if p.DueMonth != month {
			continue
		}
		house, _ := s.HouseByID(p.HouseID)
		purposes := make([]string, 0, len(p.Purposes))
		for _, tag := range p.Purposes {
			purposes = append(purposes, string(tag))
		}

		values := []any{
			p.Date,
			s.TenantName(p.TenantID),
			house.Address,
			p.DueMonth,
			strings.Join(purposes, ", "),
			p.Method,
			p.Amount,
		}
		for col, value := range values {
			if err := setCellValue(f, col+1, row, value); err != nil {
				return err
			}
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setCellValue(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
