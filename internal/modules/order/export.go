package order

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes the given orders as an xlsx spreadsheet, one row per
// order with the line items flattened into a single cell.
func WriteWorkbook(w io.Writer, orders []*Order) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Date", "Phone", "Address", "Items", "Total", "Status"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, o := range orders {
		values := []interface{}{
			o.ID.String(),
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.Phone,
			o.Address,
			flattenItems(o.Items),
			o.Total.StringFixed(2),
			string(o.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func flattenItems(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s ×%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}
