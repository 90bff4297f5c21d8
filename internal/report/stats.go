package report

import (
	"sort"

	"facturation/internal/core"
)

// Month labels as shown on the dashboard charts.
var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jun",
	"Jul", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

type (
	// MonthRevenue is one bucket of the fixed 12-entry monthly series.
	// Amounts are full-precision euros; round at the boundary.
	MonthRevenue struct {
		Label     string
		Collected float64
		Pending   float64
	}

	StatusCount struct {
		Status core.DocumentStatus
		Count  int
	}

	TypeCount struct {
		Type  core.DocumentType
		Count int
	}

	// ClientRevenue is one entry of the top-client ranking.
	ClientRevenue struct {
		Client string
		Amount float64
		Count  int
	}

	// Statistics holds every derived dashboard figure for one filtered
	// snapshot.
	Statistics struct {
		DocumentCount       int
		CollectedTotal      float64
		PendingTotal        float64
		PaidInvoiceCount    int
		PendingInvoiceCount int
		Monthly             [12]MonthRevenue
		StatusDistribution  []StatusCount
		TypeDistribution    []TypeCount
		QuoteCount          int
		ValidatedQuoteCount int
		PendingQuoteCount   int
		QuoteConversionRate float64 // percent, one decimal, 0 when no quotes
		AverageInvoiceValue float64
		TopClients          []ClientRevenue
	}
)

// TopClientLimit caps the client ranking.
const TopClientLimit = 5

// Aggregate computes all dashboard statistics from the filtered subset.
// Pure and deterministic: one pass over the input plus the final
// top-client sort. A document with a zero date is excluded from revenue
// buckets (it cannot be assigned a month) but still counts in the
// status and type distributions, so one corrupt row never blanks the
// whole dashboard.
func Aggregate(docs []core.Document) Statistics {
	stats := Statistics{DocumentCount: len(docs)}
	for i := range stats.Monthly {
		stats.Monthly[i].Label = monthLabels[i]
	}

	statusCounts := make(map[core.DocumentStatus]int)
	typeCounts := make(map[core.DocumentType]int)
	clientTotals := make(map[string]*ClientRevenue)

	for _, d := range docs {
		statusCounts[d.Status]++
		typeCounts[d.Type]++

		switch d.Type {
		case core.TypeQuote:
			stats.QuoteCount++
			switch d.Status {
			case core.StatusValidated:
				stats.ValidatedQuoteCount++
			case core.StatusPending:
				stats.PendingQuoteCount++
			}
		case core.TypeInvoice:
			switch d.Status {
			case core.StatusPaid:
				if d.Date.IsZero() {
					continue
				}
				ttc := d.TTC()
				stats.CollectedTotal += ttc
				stats.PaidInvoiceCount++
				stats.Monthly[d.Date.MonthIndex()].Collected += ttc

				name := d.DisplayClient()
				cr := clientTotals[name]
				if cr == nil {
					cr = &ClientRevenue{Client: name}
					clientTotals[name] = cr
				}
				cr.Amount += ttc
				cr.Count++
			case core.StatusPending:
				stats.PendingInvoiceCount++
				if d.Date.IsZero() {
					continue
				}
				ttc := d.TTC()
				stats.PendingTotal += ttc
				stats.Monthly[d.Date.MonthIndex()].Pending += ttc
			}
		}
	}

	// Stable presentation order; zero-valued entries are dropped, not
	// emitted with a zero.
	for _, st := range []core.DocumentStatus{core.StatusPaid, core.StatusPending, core.StatusValidated, core.StatusRejected} {
		if n := statusCounts[st]; n > 0 {
			stats.StatusDistribution = append(stats.StatusDistribution, StatusCount{Status: st, Count: n})
		}
	}
	for _, tp := range []core.DocumentType{core.TypeInvoice, core.TypeQuote} {
		if n := typeCounts[tp]; n > 0 {
			stats.TypeDistribution = append(stats.TypeDistribution, TypeCount{Type: tp, Count: n})
		}
	}

	if stats.QuoteCount > 0 {
		stats.QuoteConversionRate = core.Round1(float64(stats.ValidatedQuoteCount) / float64(stats.QuoteCount) * 100)
	}
	if stats.PaidInvoiceCount > 0 {
		stats.AverageInvoiceValue = stats.CollectedTotal / float64(stats.PaidInvoiceCount)
	}

	stats.TopClients = rankClients(clientTotals)
	return stats
}

// rankClients sorts by collected amount descending; equal amounts are
// ordered by client name ascending so the ranking is deterministic.
func rankClients(totals map[string]*ClientRevenue) []ClientRevenue {
	ranked := make([]ClientRevenue, 0, len(totals))
	for _, cr := range totals {
		ranked = append(ranked, *cr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Client < ranked[j].Client
	})
	if len(ranked) > TopClientLimit {
		ranked = ranked[:TopClientLimit]
	}
	if len(ranked) == 0 {
		return nil
	}
	return ranked
}
