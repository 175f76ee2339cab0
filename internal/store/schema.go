package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS nav_records (
    scheme_code          TEXT NOT NULL,
    nav_date             TEXT NOT NULL DEFAULT '',
    isin_growth          TEXT,
    isin_reinvest        TEXT,
    scheme_name          TEXT NOT NULL,
    nav                  TEXT,
    category             TEXT,
    fund_house           TEXT,
    imported_at          TEXT NOT NULL,
    PRIMARY KEY (scheme_code, nav_date)
);

CREATE INDEX IF NOT EXISTS idx_nav_records_fund_house ON nav_records(fund_house);
CREATE INDEX IF NOT EXISTS idx_nav_records_name ON nav_records(scheme_name);
`
