package service

import (
	"fmt"

	"hotel/internal/domains/report/model/dto"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

var summaryHeaders = []string{
	"Room Type", "Total Rooms", "Booked Rooms", "Occupancy (%)", "Bookings", "Revenue", "Average Rate",
}

func writeWorkbook(report dto.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := setRow(f, 1, toCells(summaryHeaders)); err != nil {
		return nil, err
	}

	row := 2
	for _, rt := range report.RoomTypes {
		if err := setRow(f, row, []any{
			rt.RoomType, rt.TotalRooms, rt.BookedRooms, rt.OccupancyRate, rt.BookingCount, rt.TotalRevenue, rt.AverageRate,
		}); err != nil {
			return nil, err
		}

		row++
	}

	totals := report.Totals
	if err := setRow(f, row, []any{
		"Total", totals.TotalRooms, totals.BookedRooms, totals.OccupancyRate, totals.BookingCount, totals.TotalRevenue, totals.AverageRate,
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}

		if err := f.SetCellValue(summarySheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}

	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return cells
}
