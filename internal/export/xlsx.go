package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/powertrain/internal/dynamo"
)

const SheetName = "Simulation Data"

// NewWorkbook lays the table out on a single sheet, header in row 1.
func NewWorkbook(t *dynamo.Table, extended bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(SheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	header := t.Columns(extended)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range t.Rows {
		cells := r.Cells(extended)
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func WriteXLSX(w io.Writer, t *dynamo.Table, extended bool) error {
	f, err := NewWorkbook(t, extended)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
