package amfi

import (
	"strings"
	"testing"

	"github.com/theirongolddev/fundcagr/internal/model"
)

const sampleDump = "Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date\r\n" +
	"\r\n" +
	"Open Ended Schemes(Debt Scheme - Banking and PSU Fund)\r\n" +
	"\r\n" +
	"Aditya Birla Sun Life Mutual Fund\r\n" +
	"\r\n" +
	"119551;INF209KA12Z1;INF209KA13Z9;Aditya Birla Sun Life Banking & PSU Debt Fund  - DIRECT - IDCW;103.4582;11-Apr-2025\r\n" +
	"119552;INF209K01YZ8;-;Aditya Birla Sun Life Banking & PSU Debt Fund - Direct - Growth;372.1234;11-Apr-2025\r\n" +
	"\r\n" +
	"Axis Mutual Fund\r\n" +
	"120437;INF846K01DP8;-;Axis Banking & PSU Debt Fund - Direct Plan - Growth Option;N.A.;N.A.\r\n" +
	"bad;line;with;too;many;fields;here\r\n" +
	"short;line\r\n"

func TestParse(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}

	r := res.Records[0]
	if r.SchemeCode != "119551" {
		t.Errorf("SchemeCode = %q, want 119551", r.SchemeCode)
	}
	if r.ISINGrowth != "INF209KA12Z1" || r.ISINReinvest != "INF209KA13Z9" {
		t.Errorf("ISINs = %q/%q", r.ISINGrowth, r.ISINReinvest)
	}
	if r.SchemeName != "Aditya Birla Sun Life Banking & PSU Debt Fund  - DIRECT - IDCW" {
		t.Errorf("SchemeName = %q", r.SchemeName)
	}
	if !r.NAV.Valid || r.NAV.Decimal.String() != "103.4582" {
		t.Errorf("NAV = %v, want 103.4582", r.NAV)
	}
	if !r.Date.Equal(model.Date(2025, 4, 11)) {
		t.Errorf("Date = %v, want 2025-04-11", r.Date)
	}
	if r.Category != "Open Ended Schemes(Debt Scheme - Banking and PSU Fund)" {
		t.Errorf("Category = %q", r.Category)
	}
	if r.FundHouse != "Aditya Birla Sun Life Mutual Fund" {
		t.Errorf("FundHouse = %q", r.FundHouse)
	}

	na := res.Records[2]
	if na.NAV.Valid {
		t.Errorf("N.A. NAV parsed as %v, want null", na.NAV.Decimal)
	}
	if na.HasDate() {
		t.Errorf("N.A. date parsed as %v, want zero", na.Date)
	}
	if na.FundHouse != "Axis Mutual Fund" {
		t.Errorf("FundHouse = %q, want Axis Mutual Fund", na.FundHouse)
	}
	if na.Category != r.Category {
		t.Errorf("Category = %q, want inherited %q", na.Category, r.Category)
	}
}

func TestParse_Empty(t *testing.T) {
	res, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Records) != 0 || res.Skipped != 0 {
		t.Fatalf("Parse(\"\") = %+v, want empty", res)
	}
}

func TestFilter(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := Filter(res.Records, "119552")
	if len(got) != 1 || got[0].SchemeCode != "119552" {
		t.Fatalf("Filter = %+v, want one 119552 record", got)
	}
	if got := Filter(res.Records, "999"); len(got) != 0 {
		t.Fatalf("Filter(999) = %d records, want 0", len(got))
	}
}

// FuzzParse checks that arbitrary dump content never panics and that every
// record keeps the six-field invariant.
func FuzzParse(f *testing.F) {
	f.Add(sampleDump)
	f.Add("")
	f.Add(";;;;;")
	f.Add("1;2;3;4;5;6\n")
	f.Add("Scheme Code;x\nOpen Ended Schemes(Equity)\n1;a;b;c;1e400;31-Feb-2025")

	f.Fuzz(func(t *testing.T, data string) {
		res, err := Parse(strings.NewReader(data))
		if err != nil {
			return
		}
		for _, r := range res.Records {
			if strings.Contains(r.SchemeCode, ";") || strings.Contains(r.SchemeName, ";") {
				t.Fatalf("record field contains delimiter: %+v", r)
			}
		}
	})
}
