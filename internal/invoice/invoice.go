// Package invoice renders the downloadable PDF for a paid or pending ad
// request engagement.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/sponnect/sponnect/pkg/models"
)

type Data struct {
	RequestID      int64
	CampaignName   string
	SponsorName    string
	InfluencerName string
	PaymentAmount  int64
	Status         models.Status
	Paid           bool
	Issued         time.Time
}

// Filename is the attachment name served with the PDF stream.
func Filename(requestID int64) string {
	return fmt.Sprintf("invoice_%d.pdf", requestID)
}

// Render produces the invoice PDF as a byte stream.
func Render(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Sponnect Invoice")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice no. %d", d.RequestID))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Issued "+d.Issued.Format("2006-01-02"))
	pdf.Ln(14)

	rows := []struct{ label, value string }{
		{"Campaign", d.CampaignName},
		{"Sponsor", d.SponsorName},
		{"Influencer", d.InfluencerName},
		{"Payment amount", fmt.Sprintf("%d", d.PaymentAmount)},
		{"Request status", string(d.Status)},
		{"Payment status", paymentLabel(d.Paid)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 9, row.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(120, 9, row.value, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func paymentLabel(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Unpaid"
}
