// Package export renders a filtered document set as the downloadable
// CSV artifact of the dashboard.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"facturation/internal/core"
)

// Header columns, in the order rows are written.
var header = []string{
	"Type",
	"Numéro",
	"Client",
	"Date",
	"Montant HT",
	"TVA %",
	"Montant TTC",
	"Statut",
	"Date Paiement",
}

// CSV renders one header row, one row per document and a trailer with
// the annual collected total. Fields are comma-joined without quoting;
// a client name containing a comma will shift columns. That limitation
// is carried over from the original export on purpose.
func CSV(docs []core.Document, annualTotal float64, year int) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, d := range docs {
		row := []string{
			string(d.Type),
			d.Number,
			d.DisplayClient(),
			d.Date.String(),
			d.Amount.FormatEuros(),
			strconv.FormatFloat(d.TaxRatePercent, 'f', -1, 64),
			strconv.FormatFloat(core.Round2(d.TTC()), 'f', 2, 64),
			string(d.Status),
			d.PaymentDate.String(),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	b.WriteString(fmt.Sprintf("\n\nCA Annuel %d,%.2f\n", year, annualTotal))
	return b.String()
}

// FileName is the download name for a yearly export.
func FileName(year int) string {
	return fmt.Sprintf("facturation_%d.csv", year)
}
