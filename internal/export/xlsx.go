// Package export пишет результаты поиска в файлы для ручного анализа
package export

import (
	"fmt"
	"io"

	"github.com/traveller-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

var travelHeaders = []interface{}{
	"Place ID", "Name", "Time", "Lat", "Lng", "Distance", "Distance (m)",
}

// WriteTravelRecords writes records as one xlsx sheet to w.
func WriteTravelRecords(w io.Writer, records []domain.TravelRecord, sheetName string) error {
	if sheetName == "" {
		sheetName = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", travelHeaders); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.PlaceID, r.Name, r.Time, r.Location.Lat, r.Location.Lng, r.Distance, r.MetricDistance,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	if sheetName != defaultSheet {
		f.DeleteSheet(defaultSheet)
	}
	if index, err := f.GetSheetIndex(sheetName); err == nil {
		f.SetActiveSheet(index)
	}

	_, err = f.WriteTo(w)
	return err
}
