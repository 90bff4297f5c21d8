package report

import (
	"reflect"
	"testing"

	"facturation/internal/core"
)

func doc(id int64, year int, typ core.DocumentType, status core.DocumentStatus, client, number string) core.Document {
	return core.Document{
		ID:         id,
		Type:       typ,
		Number:     number,
		ClientID:   1,
		ClientName: client,
		Date:       core.NewDate(year, 3, 15),
		Amount:     core.Money{Cents: 10000},
		Status:     status,
	}
}

func TestFilterByYear(t *testing.T) {
	docs := []core.Document{
		doc(1, 2024, core.TypeInvoice, core.StatusPaid, "Acme", "FA-1"),
		doc(2, 2023, core.TypeInvoice, core.StatusPaid, "Acme", "FA-2"),
	}
	got := Filter(docs, FilterSpec{Year: 2024})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected doc 1, got %v", got)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	docs := []core.Document{
		doc(1, 2024, core.TypeInvoice, core.StatusPaid, "Acme", "FA-1"),
		doc(2, 2024, core.TypeInvoice, core.StatusPending, "Acme", "FA-2"),
		doc(3, 2024, core.TypeQuote, core.StatusPending, "Acme", "DE-1"),
	}
	got := Filter(docs, FilterSpec{Year: 2024, Type: core.TypeInvoice, Status: core.StatusPending})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected doc 2, got %v", got)
	}
}

func TestFilterQueryCaseInsensitive(t *testing.T) {
	docs := []core.Document{
		doc(1, 2024, core.TypeInvoice, core.StatusPaid, "Acme SARL", "FA-100"),
		doc(2, 2024, core.TypeInvoice, core.StatusPaid, "Globex", "FA-200"),
	}

	if got := Filter(docs, FilterSpec{Year: 2024, Query: "acme"}); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("client query: got %v", got)
	}
	if got := Filter(docs, FilterSpec{Year: 2024, Query: "fa-2"}); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("number query: got %v", got)
	}
	if got := Filter(docs, FilterSpec{Year: 2024, Query: "zzz"}); len(got) != 0 {
		t.Fatalf("no-match query: got %v", got)
	}
}

// The fallback display name is searchable like any client name.
func TestFilterQueryMatchesFallbackName(t *testing.T) {
	d := doc(1, 2024, core.TypeInvoice, core.StatusPaid, "", "FA-1")
	got := Filter([]core.Document{d}, FilterSpec{Year: 2024, Query: "inconnu"})
	if len(got) != 1 {
		t.Fatalf("expected fallback-name match, got %v", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	docs := []core.Document{
		doc(1, 2024, core.TypeInvoice, core.StatusPaid, "Acme", "FA-1"),
		doc(2, 2024, core.TypeQuote, core.StatusPending, "Globex", "DE-1"),
	}
	spec := FilterSpec{Year: 2024, Type: core.TypeQuote}
	once := Filter(docs, spec)
	twice := Filter(once, spec)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
}

func TestZeroDateNeverMatchesYear(t *testing.T) {
	d := doc(1, 2024, core.TypeInvoice, core.StatusPaid, "Acme", "FA-1")
	d.Date = core.Date{}
	if got := Filter([]core.Document{d}, FilterSpec{Year: 2024}); len(got) != 0 {
		t.Fatalf("zero-date document matched year filter: %v", got)
	}
	if got := Filter([]core.Document{d}, FilterSpec{Year: 0}); len(got) != 1 {
		t.Fatalf("zero-date document should match year 0: %v", got)
	}
}

func TestAvailableYears(t *testing.T) {
	docs := []core.Document{
		doc(1, 2023, core.TypeInvoice, core.StatusPaid, "Acme", "FA-1"),
		doc(2, 2025, core.TypeInvoice, core.StatusPaid, "Acme", "FA-2"),
		doc(3, 2023, core.TypeQuote, core.StatusPending, "Acme", "DE-1"),
		doc(4, 2024, core.TypeInvoice, core.StatusPending, "Acme", "FA-3"),
	}
	docs = append(docs, core.Document{ID: 5}) // zero date contributes nothing

	got := AvailableYears(docs)
	want := []int{2025, 2024, 2023}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterSpecKey(t *testing.T) {
	a := FilterSpec{Year: 2024, Type: core.TypeInvoice, Query: " ACME "}
	b := FilterSpec{Year: 2024, Type: core.TypeInvoice, Query: "acme"}
	if a.Key() != b.Key() {
		t.Fatalf("keys should normalize query: %q vs %q", a.Key(), b.Key())
	}
	c := FilterSpec{Year: 2023, Type: core.TypeInvoice, Query: "acme"}
	if a.Key() == c.Key() {
		t.Fatalf("different specs share key %q", a.Key())
	}
}
