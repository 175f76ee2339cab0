package amfi

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fundcagr/internal/model"
)

// DateLayout is the layout of the dump's Date column, e.g. 11-Apr-2025.
const DateLayout = "02-Jan-2006"

const headerPrefix = "Scheme Code"

// Parse reads a NAVAll dump. Only lines containing ';' are data; the column
// header line is skipped. Undelimited lines are grouping headings: a heading
// containing "Schemes(" sets the category, any other sets the fund house.
// Unparseable NAV and Date values are coerced to null rather than rejected.
func Parse(r io.Reader) (ParseResult, error) {
	var (
		res       ParseResult
		category  string
		fundHouse string
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.Contains(line, ";") {
			heading := strings.TrimSpace(line)
			if strings.Contains(heading, "Schemes(") || strings.HasSuffix(heading, "Schemes") {
				category = heading
				fundHouse = ""
			} else {
				fundHouse = heading
			}
			continue
		}
		if strings.HasPrefix(line, headerPrefix) {
			continue
		}

		rec, ok := parseLine(line)
		if !ok {
			res.Skipped++
			continue
		}
		rec.Category = category
		rec.FundHouse = fundHouse
		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("amfi: reading dump: %v: %w", err, model.ErrParse)
	}
	return res, nil
}

func parseLine(line string) (Record, bool) {
	fields := strings.Split(line, ";")
	if len(fields) != len(Columns) {
		return Record{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	rec := Record{
		SchemeCode:   fields[0],
		ISINGrowth:   fields[1],
		ISINReinvest: fields[2],
		SchemeName:   fields[3],
	}
	if nav, err := decimal.NewFromString(fields[4]); err == nil {
		rec.NAV = decimal.NewNullDecimal(nav)
	}
	if d, err := model.ParseDate(DateLayout, fields[5]); err == nil {
		rec.Date = d
	}
	return rec, true
}

// Filter returns the records whose scheme code equals code.
func Filter(records []Record, code string) []Record {
	var out []Record
	for _, r := range records {
		if r.SchemeCode == code {
			out = append(out, r)
		}
	}
	return out
}
