package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// WriteCSV writes the header and every row at full precision.
func WriteCSV(w io.Writer, t *dynamo.Table, extended bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns(extended)); err != nil {
		return err
	}
	for _, r := range t.Rows {
		cells := r.Cells(extended)
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = formatCell(c)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return ""
}
