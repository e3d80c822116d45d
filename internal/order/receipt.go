package order

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// RenderReceipt lays out a one-page A4 PDF receipt for o.
func RenderReceipt(o Order, shopName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(shopName))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Order receipt")
	pdf.Ln(14)

	rows := [][2]string{
		{"Order ID", o.ID},
		{"Date", o.Date},
		{"Items", o.Items},
		{"Amount", "INR " + o.TotalAmount.StringFixed(2)},
		{"Payment", o.PaymentMethod},
		{"Status", o.Status},
		{"Ship to", o.ShippingAddress},
		{"Phone", o.Phone},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(140, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Thank you for shopping with us.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
