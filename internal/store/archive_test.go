package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fundcagr/internal/amfi"
	"github.com/theirongolddev/fundcagr/internal/model"
)

func openTemp(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "sub", "navall.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSaveAndLoad(t *testing.T) {
	a := openTemp(t)

	records := []amfi.Record{
		{
			SchemeCode: "119551",
			ISINGrowth: "INF209KA12Z1",
			SchemeName: "Banking & PSU Debt Fund",
			NAV:        decimal.NewNullDecimal(decimal.RequireFromString("103.4582")),
			Date:       model.Date(2025, 4, 11),
			FundHouse:  "Aditya Birla Sun Life Mutual Fund",
		},
		{
			SchemeCode: "119551",
			SchemeName: "Banking & PSU Debt Fund",
			NAV:        decimal.NewNullDecimal(decimal.RequireFromString("103.1000")),
			Date:       model.Date(2025, 4, 10),
		},
		{SchemeCode: "120437", SchemeName: "Axis Banking & PSU Debt Fund"},
	}

	n, err := a.SaveRecords(records)
	if err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	if n != 3 {
		t.Errorf("SaveRecords = %d, want 3", n)
	}

	count, err := a.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}

	got, err := a.LoadScheme("119551")
	if err != nil {
		t.Fatalf("LoadScheme: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadScheme returned %d rows, want 2", len(got))
	}
	if !got[0].Date.Equal(model.Date(2025, 4, 10)) {
		t.Errorf("first row date = %v, want 2025-04-10 (oldest first)", got[0].Date)
	}
	if !got[1].NAV.Valid || got[1].NAV.Decimal.String() != "103.4582" {
		t.Errorf("NAV = %v, want 103.4582", got[1].NAV)
	}
	if got[1].FundHouse != "Aditya Birla Sun Life Mutual Fund" {
		t.Errorf("FundHouse = %q", got[1].FundHouse)
	}

	na, err := a.LoadScheme("120437")
	if err != nil {
		t.Fatalf("LoadScheme: %v", err)
	}
	if len(na) != 1 || na[0].NAV.Valid || na[0].HasDate() {
		t.Errorf("N.A. row round-tripped as %+v", na)
	}
}

func TestSaveRecords_ReplacesSameDay(t *testing.T) {
	a := openTemp(t)

	rec := amfi.Record{
		SchemeCode: "1",
		SchemeName: "Fund",
		NAV:        decimal.NewNullDecimal(decimal.RequireFromString("10")),
		Date:       model.Date(2025, 1, 1),
	}
	if _, err := a.SaveRecords([]amfi.Record{rec}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	rec.NAV = decimal.NewNullDecimal(decimal.RequireFromString("11"))
	if _, err := a.SaveRecords([]amfi.Record{rec}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	got, err := a.LoadScheme("1")
	if err != nil {
		t.Fatalf("LoadScheme: %v", err)
	}
	if len(got) != 1 || got[0].NAV.Decimal.String() != "11" {
		t.Fatalf("LoadScheme = %+v, want single row with NAV 11", got)
	}
}
