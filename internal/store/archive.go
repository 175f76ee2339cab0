// Package store provides a SQLite archive for parsed NAV dump records.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fundcagr/internal/amfi"
	"github.com/theirongolddev/fundcagr/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Archive is a SQLite file holding NAV dump records, one row per scheme and date.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive database at the given path.
func Open(dbPath string) (*Archive, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveRecords upserts records in a single transaction and returns the number written.
// A record re-imported for the same scheme and date replaces the earlier row.
func (a *Archive) SaveRecords(records []amfi.Record) (int, error) {
	tx, err := a.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO nav_records
		(scheme_code, nav_date, isin_growth, isin_reinvest, scheme_name, nav,
		 category, fund_house, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		navDate := ""
		if r.HasDate() {
			navDate = r.Date.Format(dateLayout)
		}
		var nav sql.NullString
		if r.NAV.Valid {
			nav = sql.NullString{String: r.NAV.Decimal.String(), Valid: true}
		}

		if _, err := stmt.Exec(r.SchemeCode, navDate, r.ISINGrowth, r.ISINReinvest, r.SchemeName,
			nav, r.Category, r.FundHouse, now); err != nil {
			return 0, fmt.Errorf("saving scheme %s: %w", r.SchemeCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Count returns the number of archived rows.
func (a *Archive) Count() (int, error) {
	var count int
	err := a.db.QueryRow("SELECT COUNT(*) FROM nav_records").Scan(&count)
	return count, err
}

// LoadScheme returns the archived rows for one scheme, oldest first.
func (a *Archive) LoadScheme(code string) ([]amfi.Record, error) {
	rows, err := a.db.Query(`SELECT
		scheme_code, nav_date, isin_growth, isin_reinvest, scheme_name, nav, category, fund_house
		FROM nav_records WHERE scheme_code = ? ORDER BY nav_date`, code)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []amfi.Record
	for rows.Next() {
		var (
			r                        amfi.Record
			navDate                  string
			isinGrowth, isinReinvest sql.NullString
			nav, category, fundHouse sql.NullString
		)
		if err := rows.Scan(&r.SchemeCode, &navDate, &isinGrowth, &isinReinvest, &r.SchemeName,
			&nav, &category, &fundHouse); err != nil {
			return nil, err
		}
		r.ISINGrowth = isinGrowth.String
		r.ISINReinvest = isinReinvest.String
		r.Category = category.String
		r.FundHouse = fundHouse.String
		if navDate != "" {
			r.Date, _ = model.ParseDate(dateLayout, navDate)
		}
		if nav.Valid {
			if d, err := decimal.NewFromString(nav.String); err == nil {
				r.NAV = decimal.NewNullDecimal(d)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
